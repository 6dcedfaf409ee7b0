package mlt

// Bounds is an axis-aligned bounding box in tile coordinates.
//
// Like Coordinate, bounds are relative to the layer extent and may extend
// past it into the tile's buffer region.
type Bounds struct {
	MinX int32 // Western edge
	MinY int32 // Northern edge (tile Y grows downward)
	MaxX int32 // Eastern edge
	MaxY int32 // Southern edge
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y int32) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in tile coordinate units.
func (b Bounds) Expand(margin int32) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MaxX: b.MaxX + margin,
		MinY: b.MinY - margin,
		MaxY: b.MaxY + margin,
	}
}

// Union returns the smallest bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	if other.MinX < out.MinX {
		out.MinX = other.MinX
	}
	if other.MaxX > out.MaxX {
		out.MaxX = other.MaxX
	}
	if other.MinY < out.MinY {
		out.MinY = other.MinY
	}
	if other.MaxY > out.MaxY {
		out.MaxY = other.MaxY
	}
	return out
}

// Width returns the horizontal span in tile units.
func (b Bounds) Width() int32 {
	return b.MaxX - b.MinX
}

// Height returns the vertical span in tile units.
func (b Bounds) Height() int32 {
	return b.MaxY - b.MinY
}
