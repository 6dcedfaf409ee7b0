package mlt

import (
	"errors"
	"fmt"

	"github.com/beetlebugorg/mlt/internal/decoder"
)

// Decode decodes one MapLibre tile buffer with default options.
//
// Gzip and zlib envelopes are detected and decompressed transparently.
// Decoding is total-or-nothing: a successful call yields every layer fully
// populated, any error leaves no partial output.
//
// The returned tile does not retain data; the caller may reuse the buffer.
//
// Example:
//
//	data, _ := os.ReadFile("tile_14_8711_5677.mlt")
//	tile, err := mlt.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("decoded %d layers\n", len(tile.Layers()))
func Decode(data []byte) (*Tile, error) {
	return DecodeWithOptions(data, DefaultDecodeOptions())
}

// DecodeWithOptions decodes one MapLibre tile buffer with custom options.
//
// Use DecodeOptions to disable envelope detection or cap the decompressed
// tile size.
func DecodeWithOptions(data []byte, opts DecodeOptions) (*Tile, error) {
	body, err := unwrapEnvelope(data, opts)
	if err != nil {
		return nil, err
	}
	internal, err := decoder.DecodeTile(body)
	if err != nil {
		return nil, convertError(err)
	}
	return convertTile(internal), nil
}

// Tile is one decoded MapLibre tile: an ordered sequence of layers.
//
// Decoded tiles are immutable and safe for concurrent reads.
type Tile struct {
	layers []Layer
}

// Layers returns the tile's layers in wire order.
func (t *Tile) Layers() []Layer {
	return t.layers
}

// Layer returns the first layer with the given name.
//
// Layer names are unique in well-formed tiles, but the format does not
// enforce it; duplicates keep wire order and the first match wins.
func (t *Tile) Layer(name string) (*Layer, bool) {
	for i := range t.layers {
		if t.layers[i].name == name {
			return &t.layers[i], true
		}
	}
	return nil, false
}

// LayerNames returns the layer names in wire order.
func (t *Tile) LayerNames() []string {
	names := make([]string, len(t.layers))
	for i := range t.layers {
		names[i] = t.layers[i].name
	}
	return names
}

// FeatureCount returns the total feature count across all layers.
func (t *Tile) FeatureCount() int {
	n := 0
	for i := range t.layers {
		n += len(t.layers[i].features)
	}
	return n
}

// Layer is one decoded feature table.
type Layer struct {
	name     string
	extent   uint32
	features []Feature
	bounds   Bounds
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Extent returns the layer's coordinate extent: the tile spans [0, extent)
// on both axes in this layer's coordinates. 4096 is the conventional value.
func (l *Layer) Extent() uint32 {
	return l.extent
}

// Features returns all features in the layer, in wire order.
//
// The feature count always matches the count declared on the wire.
func (l *Layer) Features() []Feature {
	return l.features
}

// FeatureCount returns the number of features in the layer.
func (l *Layer) FeatureCount() int {
	return len(l.features)
}

// Bounds returns the bounding box covering every feature in the layer.
//
// Returns the zero Bounds for an empty layer.
func (l *Layer) Bounds() Bounds {
	return l.bounds
}

// Feature is one decoded feature: geometry, ordered properties, and an
// optional identifier.
type Feature struct {
	id         uint64
	hasID      bool
	geometry   Geometry
	properties []Property
}

// ID returns the feature identifier and whether one was present.
//
// A feature without an id reports ok=false; ids are never coerced to zero
// or any other default.
func (f *Feature) ID() (id uint64, ok bool) {
	return f.id, f.hasID
}

// Geometry returns the spatial representation of the feature.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// Properties returns the feature's key/value pairs in the layer's column
// declaration order. Columns whose value is null for this feature contribute
// no pair.
func (f *Feature) Properties() []Property {
	return f.properties
}

// Property returns the value for the given key.
//
// Returns the value and true if the property exists, or the null value and
// false if not.
//
// Example:
//
//	if name, ok := feature.Property("name"); ok {
//	    fmt.Println(name.Str())
//	}
func (f *Feature) Property(key string) (Value, bool) {
	for _, p := range f.properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Bounds returns the feature geometry's bounding box in tile coordinates.
func (f *Feature) Bounds() Bounds {
	return f.geometry.Bounds()
}

// OutOfBoundsError indicates a read past the end of the tile buffer, i.e.
// the input is truncated or a declared length overruns it.
type OutOfBoundsError struct {
	Offset int // buffer position when the read was attempted
	Need   int // bytes the read required
	Have   int // bytes remaining
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read past end of tile: offset=%d need=%d have=%d",
		e.Offset, e.Need, e.Have)
}

// CorruptTileError indicates declared tile metadata inconsistent with the
// bytes that follow it: stream payloads of the wrong length, out-of-range
// indices, invalid flags, unconsumed trailing data.
type CorruptTileError struct {
	Stream string // stream being decoded, e.g. "roads.height"
	Reason string
}

func (e *CorruptTileError) Error() string {
	if e.Stream == "" {
		return fmt.Sprintf("corrupt tile: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt tile: stream %q: %s", e.Stream, e.Reason)
}

// UnsupportedEncodingError indicates a structurally valid tile using a
// stream encoding this decoder does not implement.
type UnsupportedEncodingError struct {
	Stream   string
	Encoding uint8
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("stream %q declares unsupported encoding %d", e.Stream, e.Encoding)
}

// CorruptGeometryError indicates geometry topology inconsistent with the
// layer's vertex and topology streams.
type CorruptGeometryError struct {
	Feature int // index of the feature being reconstructed
	Reason  string
}

func (e *CorruptGeometryError) Error() string {
	return fmt.Sprintf("corrupt geometry at feature %d: %s", e.Feature, e.Reason)
}

// convertError maps internal decoder errors to their public equivalents so
// callers can dispatch with errors.As without importing internal packages.
func convertError(err error) error {
	var oob *decoder.ErrOutOfBounds
	if errors.As(err, &oob) {
		return &OutOfBoundsError{Offset: oob.Offset, Need: oob.Need, Have: oob.Have}
	}
	var cs *decoder.ErrCorruptStream
	if errors.As(err, &cs) {
		return &CorruptTileError{Stream: cs.Stream, Reason: cs.Reason}
	}
	var ue *decoder.ErrUnsupportedEncoding
	if errors.As(err, &ue) {
		return &UnsupportedEncodingError{Stream: ue.Stream, Encoding: ue.Encoding}
	}
	var cg *decoder.ErrCorruptGeometry
	if errors.As(err, &cg) {
		return &CorruptGeometryError{Feature: cg.Feature, Reason: cg.Reason}
	}
	return err
}

// convertTile converts the internal decode result to the public API model.
func convertTile(internal *decoder.Tile) *Tile {
	layers := make([]Layer, len(internal.Layers))
	for i := range internal.Layers {
		layers[i] = convertLayer(&internal.Layers[i])
	}
	return &Tile{layers: layers}
}

func convertLayer(internal *decoder.Layer) Layer {
	features := make([]Feature, len(internal.Features))
	var bounds Bounds
	for i := range internal.Features {
		features[i] = convertFeature(&internal.Features[i])
		fb := features[i].Bounds()
		if i == 0 {
			bounds = fb
		} else {
			bounds = bounds.Union(fb)
		}
	}
	return Layer{
		name:     internal.Name,
		extent:   internal.Extent,
		features: features,
		bounds:   bounds,
	}
}

func convertFeature(internal *decoder.Feature) Feature {
	var props []Property
	if len(internal.Properties) > 0 {
		props = make([]Property, len(internal.Properties))
		for i, p := range internal.Properties {
			props[i] = Property{Key: p.Key, Value: convertValue(p.Value)}
		}
	}
	return Feature{
		id:         internal.ID,
		hasID:      internal.HasID,
		geometry:   convertGeometry(internal.Geometry),
		properties: props,
	}
}

// convertGeometry maps the decoder's normalized part/ring/vertex nesting to
// the concrete public geometry for its type.
func convertGeometry(internal decoder.Geometry) Geometry {
	switch internal.Type {
	case decoder.GeometryTypePoint:
		return Point{Coordinate: convertCoord(internal.Parts[0][0][0])}
	case decoder.GeometryTypeLineString:
		return LineString{Vertices: convertCoords(internal.Parts[0][0])}
	case decoder.GeometryTypeMultiPoint:
		return MultiPoint{Points: convertCoords(internal.Parts[0][0])}
	case decoder.GeometryTypePolygon:
		return Polygon{Rings: convertRings(internal.Parts[0])}
	case decoder.GeometryTypeMultiLineString:
		return MultiLineString{Lines: convertRings(internal.Parts[0])}
	default:
		polys := make([][][]Coordinate, len(internal.Parts))
		for i, poly := range internal.Parts {
			polys[i] = convertRings(poly)
		}
		return MultiPolygon{Polygons: polys}
	}
}

func convertCoord(c decoder.Coordinate) Coordinate {
	return Coordinate{X: c.X, Y: c.Y}
}

func convertCoords(in []decoder.Coordinate) []Coordinate {
	out := make([]Coordinate, len(in))
	for i, c := range in {
		out[i] = convertCoord(c)
	}
	return out
}

func convertRings(in [][]decoder.Coordinate) [][]Coordinate {
	out := make([][]Coordinate, len(in))
	for i, ring := range in {
		out[i] = convertCoords(ring)
	}
	return out
}

func convertValue(internal decoder.Value) Value {
	switch internal.Type {
	case decoder.ValueInt:
		return Value{typ: ValueTypeInt, i: internal.Int}
	case decoder.ValueFloat:
		return Value{typ: ValueTypeFloat, f: internal.Float}
	case decoder.ValueBool:
		return Value{typ: ValueTypeBool, b: internal.Bool}
	case decoder.ValueString:
		return Value{typ: ValueTypeString, s: internal.Str}
	default:
		return Value{}
	}
}
