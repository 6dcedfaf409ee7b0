// Package mlt decodes MapLibre Tiles, a column-oriented binary vector tile
// format, into an in-memory feature model.
//
// This package is designed for map rendering applications. It provides a
// total-or-nothing tile decoder, fast spatial queries over decoded layers,
// and a clean API optimized for viewport-based rendering.
//
// # Basic Usage
//
//	data, err := os.ReadFile("tile_14_8711_5677.mlt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tile, err := mlt.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, layer := range tile.Layers() {
//	    fmt.Printf("%s: %d features at extent %d\n",
//	        layer.Name(), layer.FeatureCount(), layer.Extent())
//	}
//
// # Working with Features
//
// Each feature carries a geometry in tile-local integer coordinates, ordered
// key/value properties, and an optional identifier:
//
//	layer, ok := tile.Layer("roads")
//	if !ok {
//	    log.Fatal("no roads layer")
//	}
//
//	for _, feature := range layer.Features() {
//	    if id, ok := feature.ID(); ok {
//	        fmt.Printf("feature %d: %s\n", id, feature.Geometry().Type())
//	    }
//	    if name, ok := feature.Property("name"); ok {
//	        fmt.Printf("  name = %s\n", name.Str())
//	    }
//	}
//
// # Spatial Queries
//
// Build a FeatureIndex over a layer for fast viewport queries:
//
//	idx := mlt.NewFeatureIndex(layer)
//
//	viewport := mlt.Bounds{MinX: 0, MinY: 0, MaxX: 2048, MaxY: 2048}
//	visible := idx.Search(viewport)
//
//	// Filter by geometry type with a query
//	lines := idx.Query(viewport, mlt.QueryOptions{
//	    Types: []mlt.GeometryType{mlt.GeometryTypeLineString},
//	})
//
// # Compressed Tiles
//
// Tile servers commonly deliver tiles wrapped in a gzip or zlib envelope.
// Decode detects both by their magic bytes and decompresses transparently;
// disable detection with DecodeOptions when tile bodies are known to be raw:
//
//	tile, err := mlt.DecodeWithOptions(data, mlt.DecodeOptions{RawTiles: true})
//
// # Batch Decoding
//
// Decode many tiles at once with a worker pool:
//
//	tiles, errs := mlt.DecodeTiles(buffers, mlt.BatchOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rDecoding: %d/%d", done, total)
//	    },
//	})
//
// # Errors
//
// Every decode failure is one of four typed errors, distinguished with
// errors.As:
//
//	tile, err := mlt.Decode(data)
//	if err != nil {
//	    var corrupt *mlt.CorruptTileError
//	    var unsupported *mlt.UnsupportedEncodingError
//	    switch {
//	    case errors.As(err, &unsupported):
//	        // tile uses an encoding this decoder does not implement
//	    case errors.As(err, &corrupt):
//	        // structurally invalid tile
//	    }
//	}
//
// # Performance
//
// - Decoding is single-pass over the input buffer with no backtracking
// - Independent tiles decode safely in parallel (decoded tiles are read-only)
// - All wire-declared counts are validated before allocations are sized
// - Spatial index queries are O(log n) via an R-tree
package mlt
