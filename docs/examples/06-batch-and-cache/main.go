package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/mlt/pkg/mlt"
)

func main() {
	// Decode a directory of tiles with a worker pool
	paths, err := filepath.Glob("tiles/*.mlt")
	if err != nil || len(paths) == 0 {
		log.Fatal("no tiles found under tiles/")
	}

	buffers := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		buffers = append(buffers, data)
	}

	opts := mlt.DefaultBatchOptions()
	opts.Workers = 8
	opts.ErrorLog = os.Stderr
	opts.Progress = func(done, total int) {
		fmt.Printf("\rDecoding: %d/%d (%.0f%%)",
			done, total, float64(done)/float64(total)*100)
	}

	tiles, errs := mlt.DecodeTiles(buffers, opts)
	fmt.Printf("\nDecoded %d tiles, skipped %d\n", len(tiles)-len(errs), len(errs))

	// Keep decoded tiles in a memory-bounded LRU cache. The loader runs
	// only on cache miss; repeated lookups return the cached tile.
	cache := mlt.NewTileCache(256 * 1024 * 1024) // 256MB

	loadTile := func(path string) (*mlt.Tile, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return mlt.Decode(data)
	}

	for i := 0; i < 3; i++ {
		for _, path := range paths {
			if _, err := cache.Get(path, func() (*mlt.Tile, error) {
				return loadTile(path)
			}); err != nil {
				log.Printf("Skipping %s: %v", path, err)
			}
		}
	}

	stats := cache.Stats()
	fmt.Printf("Cache: %d tiles, %.1f MB used, %.0f%% hit rate\n",
		stats.TileCount,
		float64(stats.UsedMemory)/(1024*1024),
		stats.HitRate()*100)
}
