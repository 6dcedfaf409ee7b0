package mlt

import (
	"encoding/binary"
	"math"
)

// Wire-building helpers for end-to-end fixtures. Layouts follow the format
// documentation in internal/decoder; every stream uses the plain encoding
// so the bytes stay easy to follow.

// appendUvarint appends v as an LEB128 varint.
func appendUvarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// appendZigzag appends v as a zigzag-encoded varint.
func appendZigzag(b []byte, v int64) []byte {
	return appendUvarint(b, uint64(v<<1)^uint64(v>>63))
}

// plainStream frames values as a plain-encoded unsigned integer stream.
func plainStream(values ...uint64) []byte {
	var p []byte
	for _, v := range values {
		p = appendUvarint(p, v)
	}
	b := []byte{0} // plain encoding
	b = appendUvarint(b, uint64(len(p)))
	return append(b, p...)
}

// signedStream frames values as a plain-encoded zigzag stream.
func signedStream(values ...int64) []byte {
	var p []byte
	for _, v := range values {
		p = appendZigzag(p, v)
	}
	b := []byte{0}
	b = appendUvarint(b, uint64(len(p)))
	return append(b, p...)
}

// appendName appends a length-prefixed name.
func appendName(b []byte, name string) []byte {
	b = appendUvarint(b, uint64(len(name)))
	return append(b, name...)
}

// geometrySection assembles a layer's geometry streams with inline vertices.
// types carries one tag per feature, topo the flattened topology counts, and
// coords every vertex of the layer in wire order.
func geometrySection(types []uint64, topo []uint64, coords ...Coordinate) []byte {
	b := plainStream(types...)
	b = appendUvarint(b, uint64(len(topo)))
	b = append(b, plainStream(topo...)...)
	b = append(b, 0) // inline vertex mode
	b = appendUvarint(b, uint64(len(coords)))
	deltas := make([]int64, 0, 2*len(coords))
	var x, y int32
	for _, c := range coords {
		deltas = append(deltas, int64(c.X-x), int64(c.Y-y))
		x, y = c.X, c.Y
	}
	return append(b, signedStream(deltas...)...)
}

// pointSection builds a geometry section holding one point per feature.
func pointSection(coords ...Coordinate) []byte {
	types := make([]uint64, len(coords)) // tag 0 = point
	return geometrySection(types, nil, coords...)
}

// Column builders. Byte 0 is the physical type tag, byte 1 the flags.

func uint64Column(values ...uint64) []byte {
	return append([]byte{2, 0}, plainStream(values...)...)
}

func int64Column(values ...int64) []byte {
	return append([]byte{1, 0}, signedStream(values...)...)
}

func boolColumn(values ...bool) []byte {
	bitmap := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v {
			bitmap[i>>3] |= 1 << (i & 7)
		}
	}
	return append([]byte{0, 0}, bitmap...)
}

func float64Column(values ...float64) []byte {
	b := []byte{3, 0}
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}

// stringColumn builds a plain-layout string column: end offsets plus the
// string bytes back to back.
func stringColumn(values ...string) []byte {
	b := []byte{4, 0, 0} // string, no flags, plain layout
	ends := make([]uint64, len(values))
	var data []byte
	var total uint64
	for i, s := range values {
		total += uint64(len(s))
		ends[i] = total
		data = append(data, s...)
	}
	b = append(b, plainStream(ends...)...)
	b = appendUvarint(b, total)
	return append(b, data...)
}

// namedColumn pairs a property key with its encoded column block.
type namedColumn struct {
	name string
	body []byte
}

// buildLayer assembles one layer block. A nil idColumn writes the no-id flag.
func buildLayer(name string, extent uint64, featureCount int, idColumn, geometry []byte, props ...namedColumn) []byte {
	var b []byte
	b = appendName(b, name)
	b = appendUvarint(b, extent)
	b = appendUvarint(b, uint64(featureCount))
	if idColumn == nil {
		b = append(b, 0)
	} else {
		b = append(b, 1)
		b = append(b, idColumn...)
	}
	b = append(b, geometry...)
	b = appendUvarint(b, uint64(len(props)))
	for _, p := range props {
		b = appendName(b, p.name)
		b = append(b, p.body...)
	}
	return b
}

// buildTile frames layer blocks as a tile.
func buildTile(layers ...[]byte) []byte {
	b := appendUvarint(nil, uint64(len(layers)))
	for _, l := range layers {
		b = append(b, l...)
	}
	return b
}

// demoTile builds the two-layer fixture shared by the end-to-end tests:
//
//	roads: extent 4096, id column [10 11], two line strings,
//	       properties name (string) and lanes (int64)
//	water: extent 4096, no ids, one square polygon,
//	       property depth (float64)
func demoTile() []byte {
	roads := buildLayer("roads", 4096, 2,
		uint64Column(10, 11),
		geometrySection(
			[]uint64{1, 1}, // two line strings
			[]uint64{3, 2}, // vertex counts
			Coordinate{X: 0, Y: 0}, Coordinate{X: 100, Y: 50}, Coordinate{X: 200, Y: 50},
			Coordinate{X: 300, Y: 300}, Coordinate{X: 400, Y: 280},
		),
		namedColumn{"name", stringColumn("Main St", "Oak Ave")},
		namedColumn{"lanes", int64Column(2, 1)},
	)
	water := buildLayer("water", 4096, 1,
		nil,
		geometrySection(
			[]uint64{2},    // one polygon
			[]uint64{1, 4}, // one ring of four vertices
			Coordinate{X: 1000, Y: 1000}, Coordinate{X: 1400, Y: 1000},
			Coordinate{X: 1400, Y: 1400}, Coordinate{X: 1000, Y: 1400},
		),
		namedColumn{"depth", float64Column(2.5)},
	)
	return buildTile(roads, water)
}
