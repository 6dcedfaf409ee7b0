package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func main() {
	tilePath := flag.String("tile", "", "Path to MLT tile file")
	flag.Parse()

	if *tilePath == "" {
		log.Fatal("Please provide -tile path")
	}

	data, err := os.ReadFile(*tilePath)
	if err != nil {
		log.Fatal(err)
	}

	tile, err := mlt.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	// Print tile summary
	total := 0
	for _, layer := range tile.Layers() {
		total += layer.FeatureCount()
	}

	fmt.Printf("=== Tile Information ===\n")
	fmt.Printf("File: %s\n", *tilePath)
	fmt.Printf("Size: %d bytes\n", len(data))
	fmt.Printf("Layers: %d\n", len(tile.Layers()))
	fmt.Printf("Features: %d\n\n", total)

	// Print each layer
	fmt.Printf("=== Layers ===\n")
	for _, layer := range tile.Layers() {
		bounds := layer.Bounds()
		fmt.Printf("%s (extent %d, %d features)\n",
			layer.Name(), layer.Extent(), layer.FeatureCount())
		fmt.Printf("  bounds: (%d, %d) to (%d, %d)\n",
			bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)

		// Count features by geometry type
		counts := make(map[mlt.GeometryType]int)
		for _, f := range layer.Features() {
			counts[f.Geometry().Type()]++
		}
		for gtype, count := range counts {
			fmt.Printf("  %-15s: %d\n", gtype, count)
		}
	}
}
