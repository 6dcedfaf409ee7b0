package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func main() {
	// Read tile file
	data, err := os.ReadFile("tile_14_8711_5677.mlt")
	if err != nil {
		log.Fatal(err)
	}

	// Decode tile (gzip/zlib envelopes are detected automatically)
	tile, err := mlt.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	// Print tile info
	fmt.Printf("Layers: %d\n", len(tile.Layers()))
	fmt.Printf("Features: %d\n", tile.FeatureCount())

	for _, layer := range tile.Layers() {
		bounds := layer.Bounds()
		fmt.Printf("  %s: %d features, extent %d, bounds [%d,%d] to [%d,%d]\n",
			layer.Name(), layer.FeatureCount(), layer.Extent(),
			bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
	}
}
