package decoder

import "fmt"

// The topology stream is a flat sequence of counts, consumed per feature
// according to its geometry type:
//
//	POINT            nothing (always one vertex)
//	LINESTRING       vertex count
//	MULTIPOINT       vertex count
//	POLYGON          ring count, then one vertex count per ring
//	MULTILINESTRING  part count, then one vertex count per part
//	MULTIPOLYGON     polygon count, then per polygon a ring count and
//	                 one vertex count per ring
//
// Counts are validated against what actually remains in the topology and
// vertex streams before any slice is sized from them.

// topologyCursor walks the decoded topology stream.
type topologyCursor struct {
	counts []uint64
	pos    int
}

func (tc *topologyCursor) remaining() int {
	return len(tc.counts) - tc.pos
}

// next returns the next topology count; what names it in errors.
func (tc *topologyCursor) next(feature int, what string) (uint64, error) {
	if tc.pos >= len(tc.counts) {
		return 0, &ErrCorruptGeometry{Feature: feature, Reason: "topology stream exhausted reading " + what}
	}
	v := tc.counts[tc.pos]
	tc.pos++
	return v, nil
}

// consumeRun reads one vertex count and consumes that many vertices.
func (g *GeometryDecoder) consumeRun(feature int, what string) ([]Coordinate, error) {
	n, err := g.topo.next(feature, what)
	if err != nil {
		return nil, err
	}
	return g.consumeVertices(feature, n)
}

// consumeVertices consumes n vertices after checking that many remain.
func (g *GeometryDecoder) consumeVertices(feature int, n uint64) ([]Coordinate, error) {
	if n > uint64(g.verts.remaining()) {
		return nil, &ErrCorruptGeometry{
			Feature: feature,
			Reason:  fmt.Sprintf("topology requires %d vertices but %d remain", n, g.verts.remaining()),
		}
	}
	out := make([]Coordinate, n)
	for i := range out {
		c, err := g.verts.next(feature)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// consumeRings reads a ring count and one vertex run per ring. Ring 0 is the
// exterior, later rings are holes. Winding order is passed through unchecked.
func (g *GeometryDecoder) consumeRings(feature int) ([][]Coordinate, error) {
	ringCount, err := g.topo.next(feature, "ring count")
	if err != nil {
		return nil, err
	}
	// Each ring needs at least one more topology value.
	if ringCount > uint64(g.topo.remaining()) {
		return nil, &ErrCorruptGeometry{
			Feature: feature,
			Reason:  fmt.Sprintf("ring count %d exceeds remaining topology values (%d)", ringCount, g.topo.remaining()),
		}
	}
	rings := make([][]Coordinate, ringCount)
	for r := range rings {
		ring, err := g.consumeRun(feature, "ring vertex count")
		if err != nil {
			return nil, err
		}
		rings[r] = ring
	}
	return rings, nil
}

// consumeParts reads a part count and one vertex run per part.
func (g *GeometryDecoder) consumeParts(feature int) ([][]Coordinate, error) {
	partCount, err := g.topo.next(feature, "part count")
	if err != nil {
		return nil, err
	}
	if partCount > uint64(g.topo.remaining()) {
		return nil, &ErrCorruptGeometry{
			Feature: feature,
			Reason:  fmt.Sprintf("part count %d exceeds remaining topology values (%d)", partCount, g.topo.remaining()),
		}
	}
	parts := make([][]Coordinate, partCount)
	for p := range parts {
		part, err := g.consumeRun(feature, "part vertex count")
		if err != nil {
			return nil, err
		}
		parts[p] = part
	}
	return parts, nil
}
