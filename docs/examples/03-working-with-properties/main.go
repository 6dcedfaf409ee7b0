package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func printFeature(feature mlt.Feature) {
	if id, ok := feature.ID(); ok {
		fmt.Printf("Feature %d:\n", id)
	} else {
		fmt.Println("Feature:")
	}

	// Properties keep the layer's column order; null rows are omitted
	for _, prop := range feature.Properties() {
		fmt.Printf("  %s = %v (%s)\n", prop.Key, prop.Value, prop.Value.Type())
	}
}

// featuresWithClass filters a layer by a string property value.
func featuresWithClass(layer *mlt.Layer, class string) []mlt.Feature {
	var matched []mlt.Feature
	for _, feature := range layer.Features() {
		if v, ok := feature.Property("class"); ok && v.Str() == class {
			matched = append(matched, feature)
		}
	}
	return matched
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

	// Print details for the first few features of each layer
	for _, layer := range tile.Layers() {
		fmt.Printf("=== %s ===\n", layer.Name())
		for i, feature := range layer.Features() {
			printFeature(feature)
			if i >= 2 {
				break
			}
		}
	}

	// Typed access: read a specific property variant
	if pois, ok := tile.Layer("pois"); ok {
		for _, feature := range pois.Features() {
			name, _ := feature.Property("name")
			rank, _ := feature.Property("rank")
			fmt.Printf("%s (rank %d)\n", name.Str(), rank.Int())
		}

		parks := featuresWithClass(pois, "park")
		fmt.Printf("Parks: %d\n", len(parks))
	}
}
