package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func safeDecodeTile(path string) (*mlt.Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Check if file exists
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("tile file not found: %s", path)
		}
		return nil, err
	}

	tile, err := mlt.Decode(data)
	if err != nil {
		// Classify the decode error
		var oob *mlt.OutOfBoundsError
		var unsup *mlt.UnsupportedEncodingError
		var corrupt *mlt.CorruptTileError
		var badGeom *mlt.CorruptGeometryError

		switch {
		case errors.As(err, &oob):
			log.Printf("Tile %s is truncated: need %d more bytes at offset %d",
				path, oob.Need-oob.Have, oob.Offset)
		case errors.As(err, &unsup):
			log.Printf("Tile %s uses encoding %d in %s stream, which this decoder does not support",
				path, unsup.Encoding, unsup.Stream)
		case errors.As(err, &corrupt):
			log.Printf("Tile %s has a corrupt %s stream: %s",
				path, corrupt.Stream, corrupt.Reason)
		case errors.As(err, &badGeom):
			log.Printf("Tile %s has corrupt geometry in feature %d: %s",
				path, badGeom.Feature, badGeom.Reason)
		default:
			log.Printf("Failed to decode %s: %v", path, err)
		}
		return nil, err
	}

	// Validate tile data
	total := 0
	for _, layer := range tile.Layers() {
		total += layer.FeatureCount()
	}
	if total == 0 {
		log.Printf("Warning: %s contains no features", path)
	}

	return tile, nil
}

func main() {
	// Try to decode a tile
	tile, err := safeDecodeTile("tile.mlt")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Printf("Successfully loaded tile with %d layers\n", len(tile.Layers()))
	for _, layer := range tile.Layers() {
		fmt.Printf("  %s: %d features\n", layer.Name(), layer.FeatureCount())
	}

	// Try to decode a non-existent tile
	_, err = safeDecodeTile("NONEXISTENT.mlt")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
