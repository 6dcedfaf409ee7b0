package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func describeGeometry(g mlt.Geometry) {
	switch g := g.(type) {
	case mlt.Point:
		fmt.Printf("Point at (%d, %d)\n", g.Coordinate.X, g.Coordinate.Y)

	case mlt.LineString:
		fmt.Printf("LineString with %d vertices, length %.1f units\n",
			len(g.Vertices), lineLength(g.Vertices))

	case mlt.Polygon:
		fmt.Printf("Polygon with %d holes, area %.1f units²\n",
			len(g.Rings)-1, math.Abs(ringArea(g.Rings[0])))

	case mlt.MultiPoint:
		fmt.Printf("MultiPoint with %d points\n", len(g.Points))

	case mlt.MultiLineString:
		fmt.Printf("MultiLineString with %d parts\n", len(g.Lines))

	case mlt.MultiPolygon:
		fmt.Printf("MultiPolygon with %d polygons\n", len(g.Polygons))
	}
}

// lineLength sums segment lengths in tile units.
func lineLength(vertices []mlt.Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(vertices); i++ {
		dx := float64(vertices[i].X - vertices[i-1].X)
		dy := float64(vertices[i].Y - vertices[i-1].Y)
		length += math.Sqrt(dx*dx + dy*dy)
	}
	return length
}

// ringArea computes the signed shoelace area of a ring in tile units.
func ringArea(ring []mlt.Coordinate) float64 {
	area := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(ring[i].X) * float64(ring[j].Y)
		area -= float64(ring[j].X) * float64(ring[i].Y)
	}
	return area / 2
}

func main() {
	data, err := os.ReadFile("tile_14_8711_5677.mlt")
	if err != nil {
		log.Fatal(err)
	}
	tile, err := mlt.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	// Process the first few features of each layer
	for _, layer := range tile.Layers() {
		fmt.Printf("\n=== %s ===\n", layer.Name())
		for i, feature := range layer.Features() {
			describeGeometry(feature.Geometry())

			bounds := feature.Bounds()
			fmt.Printf("  bounds: %dx%d units\n", bounds.Width(), bounds.Height())

			if i >= 2 {
				break
			}
		}
	}
}
