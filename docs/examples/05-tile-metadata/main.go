package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func main() {
	// Inventory a tile directory without decoding feature payloads.
	// ScanMetadata walks only structural headers, so this stays fast
	// even for large tile sets.
	paths, err := filepath.Glob("tiles/*.mlt")
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal("no tiles found under tiles/")
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}

		meta, err := mlt.ScanMetadata(data)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}

		fmt.Printf("%s:\n", filepath.Base(path))
		for _, layer := range meta.Layers {
			id := ""
			if layer.HasID {
				id = ", ids"
			}
			fmt.Printf("  %s: %d features, extent %d%s\n",
				layer.Name, layer.FeatureCount, layer.Extent, id)

			for _, col := range layer.Columns {
				nullable := ""
				if col.Nullable {
					nullable = " (nullable)"
				}
				fmt.Printf("    %-12s %s%s\n", col.Name, col.Type, nullable)
			}
		}
	}
}
