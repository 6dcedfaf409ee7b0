package mlt

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// BatchOptions controls batch decoding behavior and error handling.
type BatchOptions struct {
	// Parallel enables concurrent tile decoding.
	// When true, tiles are decoded using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of decoder goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes decoding to continue even when individual tiles fail.
	// Failed tiles leave a nil slot and their errors are collected.
	// When false, the first error stops decoding and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking decode progress.
	// Called after each tile is decoded (successfully or with error).
	// Parameters: (done, total) where done is the count of tiles processed so far.
	Progress func(done, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	// Each decode error is written here with the tile index and error details.
	ErrorLog io.Writer

	// Options applies to each tile decode, e.g. envelope handling.
	Options DecodeOptions
}

// DefaultBatchOptions returns batch options with sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
		ErrorLog:   nil,
		Options:    DefaultDecodeOptions(),
	}
}

// DecodeTiles decodes multiple tile buffers with a worker pool.
//
// The result slice always has one slot per input buffer, in input order.
// With SkipErrors set, a failed tile leaves its slot nil and the error is
// collected; otherwise the first failure aborts the batch.
//
// Tiles decode independently, so the speedup is close to linear in worker
// count for CPU-bound batches.
//
// Example:
//
//	buffers := fetchTiles(keys)
//
//	tiles, errs := mlt.DecodeTiles(buffers, mlt.BatchOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rDecoding: %d/%d (%.0f%%)",
//	            done, total, float64(done)/float64(total)*100)
//	    },
//	    ErrorLog: os.Stderr,
//	})
//
//	if len(errs) > 0 {
//	    fmt.Printf("\nSkipped %d tiles due to errors\n", len(errs))
//	}
func DecodeTiles(buffers [][]byte, opts BatchOptions) ([]*Tile, []error) {
	if len(buffers) == 0 {
		return []*Tile{}, nil
	}

	// If parallel decoding disabled, fall back to serial
	if !opts.Parallel {
		return decodeTilesSerial(buffers, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(buffers) {
		workers = len(buffers)
	}

	type decodeResult struct {
		index int
		tile  *Tile
		err   error
	}

	jobs := make(chan int, len(buffers))
	results := make(chan decodeResult, len(buffers))

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				tile, err := DecodeWithOptions(buffers[index], opts.Options)
				results <- decodeResult{
					index: index,
					tile:  tile,
					err:   err,
				}
			}
		}()
	}

	// Send jobs to workers
	for i := range buffers {
		jobs <- i
	}
	close(jobs)

	// Wait for workers to finish in a separate goroutine
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results
	tiles := make([]*Tile, len(buffers))
	var errs []error
	done := 0

	for result := range results {
		done++

		if opts.Progress != nil {
			opts.Progress(done, len(buffers))
		}

		if result.err != nil {
			err := fmt.Errorf("tile %d: %w", result.index, result.err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error decoding tile: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			// Stop on first error
			return nil, []error{err}
		}

		tiles[result.index] = result.tile
	}

	return tiles, errs
}

// decodeTilesSerial decodes tiles one at a time (fallback when Parallel=false).
func decodeTilesSerial(buffers [][]byte, opts BatchOptions) ([]*Tile, []error) {
	tiles := make([]*Tile, len(buffers))
	var errs []error

	for i, data := range buffers {
		tile, err := DecodeWithOptions(data, opts.Options)
		if err != nil {
			err := fmt.Errorf("tile %d: %w", i, err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error decoding tile: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				if opts.Progress != nil {
					opts.Progress(i+1, len(buffers))
				}
				continue
			}
			return nil, []error{err}
		}

		tiles[i] = tile
		if opts.Progress != nil {
			opts.Progress(i+1, len(buffers))
		}
	}

	return tiles, errs
}
