package decoder

import "fmt"

// vertexCursor walks the layer-wide vertex buffer in wire order. Inline
// vertices are recovered by accumulating per-axis deltas across the entire
// layer (the chain is never reset between features), so features must consume
// vertices strictly in declared order. With a vertex dictionary the entries
// were delta-accumulated once up front and features consume indices instead.
type vertexCursor struct {
	name     string
	deltas   []uint64 // inline: interleaved (dx, dy) as signed patterns
	dict     []Coordinate
	indices  []uint64
	dictMode bool
	pos      int
	x, y     int32
}

// remaining reports how many vertices can still be consumed.
func (vc *vertexCursor) remaining() int {
	if vc.dictMode {
		return len(vc.indices) - vc.pos
	}
	return len(vc.deltas)/2 - vc.pos
}

// next consumes one vertex, advancing the layer-wide cursor.
func (vc *vertexCursor) next(feature int) (Coordinate, error) {
	if vc.dictMode {
		if vc.pos >= len(vc.indices) {
			return Coordinate{}, &ErrCorruptGeometry{Feature: feature, Reason: "vertex index stream exhausted"}
		}
		idx := vc.indices[vc.pos]
		vc.pos++
		if idx >= uint64(len(vc.dict)) {
			return Coordinate{}, &ErrCorruptStream{
				Stream: vc.name,
				Reason: fmt.Sprintf("vertex dictionary index %d out of range (%d entries)", idx, len(vc.dict)),
			}
		}
		return vc.dict[idx], nil
	}
	if 2*vc.pos >= len(vc.deltas) {
		return Coordinate{}, &ErrCorruptGeometry{Feature: feature, Reason: "vertex buffer exhausted"}
	}
	vc.x += int32(int64(vc.deltas[2*vc.pos]))
	vc.y += int32(int64(vc.deltas[2*vc.pos+1]))
	vc.pos++
	return Coordinate{X: vc.x, Y: vc.y}, nil
}

// GeometryDecoder reconstructs per-feature geometries from a layer's geometry
// type stream, topology stream, and vertex buffer.
type GeometryDecoder struct {
	layer string
	types []GeometryType
	topo  topologyCursor
	verts vertexCursor
}

// decodeGeometrySection reads a layer's geometry streams.
//
// Section layout:
//
//	types:      integer stream, one type tag per feature
//	topoCount:  uvarint
//	topology:   integer stream of topoCount counts
//	vertexMode: byte
//	  0 inline:     pairCount:uvarint, integer stream of 2*pairCount deltas
//	  1 dictionary: dictPairs:uvarint, integer stream of 2*dictPairs deltas,
//	                indexCount:uvarint, integer stream of indexCount indices
func decodeGeometrySection(cur *ByteCursor, layer string, featureCount int) (*GeometryDecoder, error) {
	g := &GeometryDecoder{layer: layer}

	rawTypes, err := decodeIntStream(cur, layer+".geometry.types", featureCount, false)
	if err != nil {
		return nil, err
	}
	g.types = make([]GeometryType, featureCount)
	for i, raw := range rawTypes {
		if raw > uint64(GeometryTypeMultiPolygon) {
			return nil, &ErrCorruptGeometry{Feature: i, Reason: fmt.Sprintf("unknown geometry type tag %d", raw)}
		}
		g.types[i] = GeometryType(raw)
	}

	topoStream := layer + ".geometry.topology"
	topoCount, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(topoStream, topoCount, maxStreamValues); err != nil {
		return nil, err
	}
	counts, err := decodeIntStream(cur, topoStream, int(topoCount), false)
	if err != nil {
		return nil, err
	}
	g.topo = topologyCursor{counts: counts}

	mode, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	switch mode {
	case vertexModeInline:
		stream := layer + ".geometry.vertices"
		pairCount, err := cur.Uvarint()
		if err != nil {
			return nil, err
		}
		if err := checkCount(stream, pairCount, maxStreamValues/2); err != nil {
			return nil, err
		}
		deltas, err := decodeIntStream(cur, stream, int(2*pairCount), true)
		if err != nil {
			return nil, err
		}
		g.verts = vertexCursor{name: stream, deltas: deltas}
	case vertexModeDict:
		stream := layer + ".geometry.vertexdict"
		dictPairs, err := cur.Uvarint()
		if err != nil {
			return nil, err
		}
		if err := checkCount(stream, dictPairs, maxStreamValues/2); err != nil {
			return nil, err
		}
		deltas, err := decodeIntStream(cur, stream, int(2*dictPairs), true)
		if err != nil {
			return nil, err
		}
		// The dictionary itself is one delta chain; accumulate it once.
		dict := make([]Coordinate, dictPairs)
		var x, y int32
		for i := range dict {
			x += int32(int64(deltas[2*i]))
			y += int32(int64(deltas[2*i+1]))
			dict[i] = Coordinate{X: x, Y: y}
		}
		idxStream := layer + ".geometry.vertexindices"
		indexCount, err := cur.Uvarint()
		if err != nil {
			return nil, err
		}
		if err := checkCount(idxStream, indexCount, maxStreamValues); err != nil {
			return nil, err
		}
		indices, err := decodeIntStream(cur, idxStream, int(indexCount), false)
		if err != nil {
			return nil, err
		}
		g.verts = vertexCursor{name: idxStream, dict: dict, indices: indices, dictMode: true}
	default:
		return nil, &ErrCorruptStream{Stream: layer + ".geometry", Reason: fmt.Sprintf("unknown vertex buffer mode %d", mode)}
	}
	return g, nil
}

// decodeFeature reconstructs feature i's geometry. Features must be decoded in
// ascending order: the vertex cursor's delta chain spans the whole layer.
func (g *GeometryDecoder) decodeFeature(i int) (Geometry, error) {
	switch g.types[i] {
	case GeometryTypePoint:
		c, err := g.verts.next(i)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Type: GeometryTypePoint, Parts: [][][]Coordinate{{{c}}}}, nil

	case GeometryTypeLineString, GeometryTypeMultiPoint:
		run, err := g.consumeRun(i, "vertex count")
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Type: g.types[i], Parts: [][][]Coordinate{{run}}}, nil

	case GeometryTypePolygon:
		rings, err := g.consumeRings(i)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Type: GeometryTypePolygon, Parts: [][][]Coordinate{rings}}, nil

	case GeometryTypeMultiLineString:
		parts, err := g.consumeParts(i)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{Type: GeometryTypeMultiLineString, Parts: [][][]Coordinate{parts}}, nil

	case GeometryTypeMultiPolygon:
		polyCount, err := g.topo.next(i, "polygon count")
		if err != nil {
			return Geometry{}, err
		}
		// Each polygon needs at least a ring count.
		if polyCount > uint64(g.topo.remaining()) {
			return Geometry{}, &ErrCorruptGeometry{
				Feature: i,
				Reason:  fmt.Sprintf("polygon count %d exceeds remaining topology values (%d)", polyCount, g.topo.remaining()),
			}
		}
		polys := make([][][]Coordinate, polyCount)
		for p := range polys {
			rings, err := g.consumeRings(i)
			if err != nil {
				return Geometry{}, err
			}
			polys[p] = rings
		}
		return Geometry{Type: GeometryTypeMultiPolygon, Parts: polys}, nil

	default:
		// Tags were validated in decodeGeometrySection.
		return Geometry{}, &ErrCorruptGeometry{Feature: i, Reason: fmt.Sprintf("unknown geometry type tag %d", g.types[i])}
	}
}

// finish verifies every geometry stream was consumed exactly.
func (g *GeometryDecoder) finish() error {
	if n := g.topo.remaining(); n > 0 {
		return &ErrCorruptStream{
			Stream: g.layer + ".geometry.topology",
			Reason: fmt.Sprintf("%d unconsumed topology values", n),
		}
	}
	if n := g.verts.remaining(); n > 0 {
		what := "vertex pairs"
		if g.verts.dictMode {
			what = "vertex indices"
		}
		return &ErrCorruptStream{Stream: g.verts.name, Reason: fmt.Sprintf("%d unconsumed %s", n, what)}
	}
	return nil
}
