package mlt

// Coordinate is a tile-local vertex.
//
// Coordinates are integers relative to the layer extent: (0, 0) is the tile's
// top-left corner and (extent, extent) its bottom-right. Values may be
// negative or exceed the extent for geometry running into the tile's buffer
// region.
type Coordinate struct {
	X, Y int32
}

// GeometryType identifies the shape of a feature's geometry.
type GeometryType int

const (
	// GeometryTypePoint is a single location.
	GeometryTypePoint GeometryType = iota

	// GeometryTypeLineString is a connected sequence of vertices.
	GeometryTypeLineString

	// GeometryTypePolygon is an area with one exterior ring and zero or
	// more holes.
	GeometryTypePolygon

	// GeometryTypeMultiPoint is a set of locations.
	GeometryTypeMultiPoint

	// GeometryTypeMultiLineString is a set of line strings.
	GeometryTypeMultiLineString

	// GeometryTypeMultiPolygon is a set of polygons.
	GeometryTypeMultiPolygon
)

// String returns the human-readable name of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPoint:
		return "MultiPoint"
	case GeometryTypeMultiLineString:
		return "MultiLineString"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// Geometry is the spatial representation of a feature.
//
// Type-switch on the concrete type to access vertices:
//
//	switch g := feature.Geometry().(type) {
//	case mlt.Point:
//	    draw(g.Coordinate)
//	case mlt.LineString:
//	    drawLine(g.Vertices)
//	case mlt.Polygon:
//	    fill(g.Rings)
//	}
type Geometry interface {
	// Type returns the geometry type tag.
	Type() GeometryType

	// Bounds returns the geometry's bounding box in tile coordinates.
	Bounds() Bounds
}

// Point is a single location.
type Point struct {
	Coordinate Coordinate
}

func (p Point) Type() GeometryType { return GeometryTypePoint }

func (p Point) Bounds() Bounds {
	return Bounds{MinX: p.Coordinate.X, MinY: p.Coordinate.Y, MaxX: p.Coordinate.X, MaxY: p.Coordinate.Y}
}

// LineString is a connected sequence of vertices.
type LineString struct {
	Vertices []Coordinate
}

func (l LineString) Type() GeometryType { return GeometryTypeLineString }

func (l LineString) Bounds() Bounds { return coordsBounds(l.Vertices) }

// Polygon is an area. Rings[0] is the exterior ring; any further rings are
// holes. Winding order is passed through from the tile unchecked.
type Polygon struct {
	Rings [][]Coordinate
}

func (p Polygon) Type() GeometryType { return GeometryTypePolygon }

func (p Polygon) Bounds() Bounds {
	var b Bounds
	for i, ring := range p.Rings {
		rb := coordsBounds(ring)
		if i == 0 {
			b = rb
		} else {
			b = b.Union(rb)
		}
	}
	return b
}

// MultiPoint is a set of locations.
type MultiPoint struct {
	Points []Coordinate
}

func (m MultiPoint) Type() GeometryType { return GeometryTypeMultiPoint }

func (m MultiPoint) Bounds() Bounds { return coordsBounds(m.Points) }

// MultiLineString is a set of line strings.
type MultiLineString struct {
	Lines [][]Coordinate
}

func (m MultiLineString) Type() GeometryType { return GeometryTypeMultiLineString }

func (m MultiLineString) Bounds() Bounds {
	var b Bounds
	for i, line := range m.Lines {
		lb := coordsBounds(line)
		if i == 0 {
			b = lb
		} else {
			b = b.Union(lb)
		}
	}
	return b
}

// MultiPolygon is a set of polygons. Each entry follows the Polygon ring
// convention: ring 0 exterior, later rings holes.
type MultiPolygon struct {
	Polygons [][][]Coordinate
}

func (m MultiPolygon) Type() GeometryType { return GeometryTypeMultiPolygon }

func (m MultiPolygon) Bounds() Bounds {
	var b Bounds
	first := true
	for _, poly := range m.Polygons {
		for _, ring := range poly {
			rb := coordsBounds(ring)
			if first {
				b = rb
				first = false
			} else {
				b = b.Union(rb)
			}
		}
	}
	return b
}

// coordsBounds computes the bounding box of a vertex run. An empty run yields
// the zero Bounds.
func coordsBounds(coords []Coordinate) Bounds {
	if len(coords) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: coords[0].X, MinY: coords[0].Y, MaxX: coords[0].X, MaxY: coords[0].Y}
	for _, c := range coords[1:] {
		if c.X < b.MinX {
			b.MinX = c.X
		}
		if c.X > b.MaxX {
			b.MaxX = c.X
		}
		if c.Y < b.MinY {
			b.MinY = c.Y
		}
		if c.Y > b.MaxY {
			b.MaxY = c.Y
		}
	}
	return b
}
