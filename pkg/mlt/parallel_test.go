package mlt

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeTiles(t *testing.T) {
	buffers := make([][]byte, 8)
	for i := range buffers {
		buffers[i] = demoTile()
	}

	tiles, errs := DecodeTiles(buffers, DefaultBatchOptions())
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if len(tiles) != len(buffers) {
		t.Fatalf("Expected %d tiles, got %d", len(buffers), len(tiles))
	}
	for i, tile := range tiles {
		if tile == nil {
			t.Fatalf("Expected tile %d to decode", i)
		}
		if tile.FeatureCount() != 3 {
			t.Errorf("Tile %d: expected 3 features, got %d", i, tile.FeatureCount())
		}
	}
}

func TestDecodeTilesSerial(t *testing.T) {
	buffers := [][]byte{demoTile(), demoTile(), demoTile()}

	opts := DefaultBatchOptions()
	opts.Parallel = false

	var calls []int
	opts.Progress = func(done, total int) {
		calls = append(calls, done)
		if total != len(buffers) {
			t.Errorf("Expected total %d, got %d", len(buffers), total)
		}
	}

	tiles, errs := DecodeTiles(buffers, opts)
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	for i, tile := range tiles {
		if tile == nil {
			t.Fatalf("Expected tile %d to decode", i)
		}
	}
	// Serial decoding reports progress in order
	if len(calls) != 3 || calls[0] != 1 || calls[2] != 3 {
		t.Errorf("Expected progress [1 2 3], got %v", calls)
	}
}

func TestDecodeTilesSkipErrors(t *testing.T) {
	buffers := [][]byte{demoTile(), {0xff, 0xff}, demoTile()}

	tiles, errs := DecodeTiles(buffers, DefaultBatchOptions())
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "tile 1") {
		t.Errorf("Expected error to name tile 1, got: %v", errs[0])
	}
	if tiles[0] == nil || tiles[2] == nil {
		t.Error("Expected valid tiles to decode despite the failure")
	}
	if tiles[1] != nil {
		t.Error("Expected nil slot for the failed tile")
	}
}

func TestDecodeTilesFailFast(t *testing.T) {
	buffers := [][]byte{demoTile(), {0xff, 0xff}, demoTile()}

	opts := DefaultBatchOptions()
	opts.Parallel = false
	opts.SkipErrors = false

	tiles, errs := DecodeTiles(buffers, opts)
	if tiles != nil {
		t.Error("Expected nil tiles on fail-fast error")
	}
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
}

func TestDecodeTilesProgress(t *testing.T) {
	buffers := make([][]byte, 9)
	for i := range buffers {
		buffers[i] = demoTile()
	}

	calls := 0
	lastDone := 0
	opts := DefaultBatchOptions()
	opts.Progress = func(done, total int) {
		calls++
		lastDone = done
	}

	if _, errs := DecodeTiles(buffers, opts); len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if calls != len(buffers) {
		t.Errorf("Expected %d progress calls, got %d", len(buffers), calls)
	}
	if lastDone != len(buffers) {
		t.Errorf("Expected final done %d, got %d", len(buffers), lastDone)
	}
}

func TestDecodeTilesErrorLog(t *testing.T) {
	var log bytes.Buffer
	opts := DefaultBatchOptions()
	opts.ErrorLog = &log

	_, errs := DecodeTiles([][]byte{{0xff, 0xff}}, opts)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(log.String(), "tile 0") {
		t.Errorf("Expected error log to name tile 0, got: %s", log.String())
	}
}

func TestDecodeTilesEmpty(t *testing.T) {
	tiles, errs := DecodeTiles(nil, DefaultBatchOptions())
	if len(tiles) != 0 {
		t.Errorf("Expected no tiles, got %d", len(tiles))
	}
	if errs != nil {
		t.Errorf("Expected nil errors, got %v", errs)
	}
}

func TestDecodeTilesEnveloped(t *testing.T) {
	buffers := [][]byte{demoTile(), gzipped(demoTile()), zlibbed(demoTile())}

	tiles, errs := DecodeTiles(buffers, DefaultBatchOptions())
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	for i, tile := range tiles {
		if tile == nil || tile.FeatureCount() != 3 {
			t.Errorf("Tile %d: expected 3 features", i)
		}
	}
}
