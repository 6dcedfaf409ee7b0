package mlt

// DecodeOptions configures decoding behavior.
type DecodeOptions struct {
	// RawTiles disables gzip/zlib envelope detection.
	// Set this when tile bodies are known to be uncompressed: a raw tile
	// can begin with bytes that look like a zlib header, and detection
	// would misread it.
	RawTiles bool

	// MaxTileBytes caps the size of a decompressed tile body in bytes.
	// Tiles expanding past the cap fail rather than exhausting memory.
	// If 0, DefaultMaxTileBytes applies. Raw (unwrapped) inputs are the
	// caller's buffer and are not checked.
	MaxTileBytes int
}

// DefaultMaxTileBytes is the decompressed tile size cap applied when
// DecodeOptions.MaxTileBytes is zero.
const DefaultMaxTileBytes = 1 << 28 // 256MB

// DefaultDecodeOptions returns default options.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		RawTiles:     false,
		MaxTileBytes: DefaultMaxTileBytes,
	}
}
