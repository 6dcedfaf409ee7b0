package decoder

// ValueType discriminates the scalar variants a property value can hold.
// Further tags may be added by future format versions; consumers should treat
// unknown tags as null rather than guessing.
type ValueType uint8

const (
	ValueNull   ValueType = 0
	ValueInt    ValueType = 1
	ValueFloat  ValueType = 2
	ValueBool   ValueType = 3
	ValueString ValueType = 4
)

// Value is one decoded scalar. The zero value is null. Exactly one of the
// payload fields is meaningful, selected by Type. UINT64 columns store their
// values in Int as the same 64-bit pattern.
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

// Property is one key/value pair. A feature's properties keep the layer's
// column declaration order.
type Property struct {
	Key   string
	Value Value
}

// Coordinate is a tile-local vertex, expressed relative to the layer extent.
// Values may be negative or exceed the extent for geometry running into the
// tile's buffer region.
type Coordinate struct {
	X, Y int32
}

// Geometry is the decoder's normalized geometry container. Parts always has
// three nesting levels ([part][ring][vertex]); how much of that depth carries
// meaning depends on Type:
//
//	POINT                     Parts[0][0][0]
//	LINESTRING, MULTIPOINT    Parts[0][0]
//	POLYGON                   Parts[0], one entry per ring (ring 0 exterior)
//	MULTILINESTRING           Parts[0], one entry per line
//	MULTIPOLYGON              Parts, one entry per polygon
type Geometry struct {
	Type  GeometryType
	Parts [][][]Coordinate
}

// Feature is one decoded feature row: geometry, ordered properties, and an
// optional identifier. ID is meaningful only when HasID is set; a missing id
// is never coerced to zero or any other numeric default.
type Feature struct {
	ID         uint64
	HasID      bool
	Geometry   Geometry
	Properties []Property
}

// Layer is one decoded feature table. len(Features) always equals the feature
// count declared on the wire.
type Layer struct {
	Name     string
	Extent   uint32
	Features []Feature
}

// Tile is the decode unit: an ordered sequence of layers, order preserved from
// the wire.
type Tile struct {
	Layers []Layer
}
