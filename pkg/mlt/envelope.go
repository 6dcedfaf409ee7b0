package mlt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Tile servers deliver tile bodies raw or wrapped in a gzip or zlib envelope,
// usually without reliable content headers. Both envelopes are recognizable
// from their first two bytes, so decoding sniffs the buffer instead of
// trusting transport metadata.

// isGzip reports whether data starts with the gzip magic bytes.
func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// isZlib reports whether data starts with a plausible zlib header: deflate
// compression method and a valid header checksum (RFC 1950).
func isZlib(data []byte) bool {
	if len(data) < 2 || data[0]&0x0f != 8 {
		return false
	}
	return (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// unwrapEnvelope returns the raw tile body, decompressing a gzip or zlib
// envelope when one is detected. Detection can be disabled via options for
// tile sets known to be raw.
func unwrapEnvelope(data []byte, opts DecodeOptions) ([]byte, error) {
	if opts.RawTiles {
		return data, nil
	}
	switch {
	case isGzip(data):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip envelope: %w", err)
		}
		defer r.Close()
		return readCapped(r, "gzip", opts.MaxTileBytes)
	case isZlib(data):
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zlib envelope: %w", err)
		}
		defer r.Close()
		return readCapped(r, "zlib", opts.MaxTileBytes)
	default:
		return data, nil
	}
}

// readCapped reads a decompressed body up to the configured cap. A body
// running past the cap fails instead of growing without bound: envelope
// headers are attacker-controlled and a small input can declare a huge body.
func readCapped(r io.Reader, envelope string, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTileBytes
	}
	body, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)+1))
	if err != nil {
		return nil, fmt.Errorf("%s envelope: %w", envelope, err)
	}
	if len(body) > maxBytes {
		return nil, fmt.Errorf("%s envelope: decompressed tile exceeds %d bytes", envelope, maxBytes)
	}
	return body, nil
}
