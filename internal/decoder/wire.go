package decoder

import "fmt"

// StreamEncoding identifies how an integer stream's payload is compressed.
// The MapLibre Tile format reserves further tags for schemes this decoder does
// not implement; those fail with ErrUnsupportedEncoding rather than being
// guessed at.
type StreamEncoding uint8

const (
	EncodingPlain      StreamEncoding = 0 // one varint per value
	EncodingDelta      StreamEncoding = 1 // base value plus zigzag deltas
	EncodingRLE        StreamEncoding = 2 // (value, run length) pairs
	EncodingDictionary StreamEncoding = 3 // nested value stream plus indices
	EncodingPFoR       StreamEncoding = 4 // patched frame-of-reference, bit-packed
)

func (e StreamEncoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingDelta:
		return "delta"
	case EncodingRLE:
		return "rle"
	case EncodingDictionary:
		return "dictionary"
	case EncodingPFoR:
		return "pfor"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// PhysicalType identifies a column's storage type on the wire.
type PhysicalType uint8

const (
	PhysicalBool    PhysicalType = 0
	PhysicalInt64   PhysicalType = 1
	PhysicalUint64  PhysicalType = 2
	PhysicalFloat64 PhysicalType = 3
	PhysicalString  PhysicalType = 4
)

func (t PhysicalType) String() string {
	switch t {
	case PhysicalBool:
		return "BOOL"
	case PhysicalInt64:
		return "INT64"
	case PhysicalUint64:
		return "UINT64"
	case PhysicalFloat64:
		return "FLOAT64"
	case PhysicalString:
		return "STRING"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// GeometryType tags match the wire encoding and are stable across format versions.
type GeometryType uint8

const (
	GeometryTypePoint           GeometryType = 0
	GeometryTypeLineString      GeometryType = 1
	GeometryTypePolygon         GeometryType = 2
	GeometryTypeMultiPoint      GeometryType = 3
	GeometryTypeMultiLineString GeometryType = 4
	GeometryTypeMultiPolygon    GeometryType = 5
)

func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "POINT"
	case GeometryTypeLineString:
		return "LINESTRING"
	case GeometryTypePolygon:
		return "POLYGON"
	case GeometryTypeMultiPoint:
		return "MULTIPOINT"
	case GeometryTypeMultiLineString:
		return "MULTILINESTRING"
	case GeometryTypeMultiPolygon:
		return "MULTIPOLYGON"
	default:
		return fmt.Sprintf("geometry(%d)", uint8(g))
	}
}

// Column header flags (byte 1 of a column block).
const columnFlagNullable = 0x01 // presence bitmap precedes the value payload

// String column layouts.
const (
	stringModePlain = 0 // end-offset stream plus contiguous bytes
	stringModeDict  = 1 // shared string table plus index stream
)

// Vertex buffer layouts.
const (
	vertexModeInline = 0 // interleaved per-axis delta pairs
	vertexModeDict   = 1 // delta-coded vertex dictionary plus index stream
)

// pforBlockSize is the number of values per patched frame-of-reference block;
// the final block of a stream may be shorter.
const pforBlockSize = 128
