package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func main() {
	// Decode tile
	data, err := os.ReadFile("tile_14_8711_5677.mlt")
	if err != nil {
		log.Fatal(err)
	}
	tile, err := mlt.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	layer, ok := tile.Layer("roads")
	if !ok {
		log.Fatal("tile has no roads layer")
	}

	// Build the R-tree index once, query it many times
	idx := mlt.NewFeatureIndex(layer)

	// Top-left quarter of the tile
	viewport := mlt.Bounds{MinX: 0, MinY: 0, MaxX: 2048, MaxY: 2048}

	// Query R-tree index for visible features (O(log n))
	visible := idx.Search(viewport)
	fmt.Printf("Visible features: %d of %d\n", len(visible), idx.Count())

	// Line features only, capped at 10 results
	lines := idx.Query(viewport, mlt.QueryOptions{
		Types: []mlt.GeometryType{
			mlt.GeometryTypeLineString,
			mlt.GeometryTypeMultiLineString,
		},
		MaxResults: 10,
	})

	for _, feature := range lines {
		name, _ := feature.Property("name")
		fmt.Printf("  %s: %s\n", feature.Geometry().Type(), name.Str())
	}
}
