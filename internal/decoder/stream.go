package decoder

import (
	"errors"
	"fmt"
)

// decodeIntStream decodes one integer stream: a one-byte encoding tag, the
// declared payload length as a uvarint, then the payload. It produces exactly
// count values or fails.
//
// Values are returned as raw 64-bit patterns. For signed streams the patterns
// are two's-complement (zigzag already undone); callers reinterpret with
// int64(v). Delta and patched frame-of-reference payloads carry sign in the
// encoding itself, so the signed flag only affects how Plain, RLE, and
// Dictionary read individual values.
//
// A count of zero consumes the stream header and requires an empty payload,
// regardless of tag.
func decodeIntStream(cur *ByteCursor, stream string, count int, signed bool) ([]uint64, error) {
	return decodeIntStreamNested(cur, stream, count, signed, 0)
}

func decodeIntStreamNested(cur *ByteCursor, stream string, count int, signed bool, depth int) ([]uint64, error) {
	if depth > maxDictNesting {
		return nil, &ErrCorruptStream{Stream: stream, Reason: "dictionary streams nested too deeply"}
	}
	if err := checkCount(stream, uint64(count), maxStreamValues); err != nil {
		return nil, err
	}
	enc, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	byteLen, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	body, err := cur.Sub(int(byteLen))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if byteLen != 0 {
			return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("%d payload bytes declared for an empty stream", byteLen)}
		}
		return nil, nil
	}

	var out []uint64
	switch StreamEncoding(enc) {
	case EncodingPlain:
		out, err = decodePlain(body, count, signed)
	case EncodingDelta:
		out, err = decodeDelta(body, count)
	case EncodingRLE:
		out, err = decodeRLE(body, stream, count, signed)
	case EncodingDictionary:
		out, err = decodeDictionary(body, stream, count, signed, depth)
	case EncodingPFoR:
		out, err = decodePFoR(body, stream, count)
	default:
		return nil, &ErrUnsupportedEncoding{Stream: stream, Encoding: enc}
	}
	if err != nil {
		return nil, payloadErr(stream, err)
	}
	if n := body.Remaining(); n > 0 {
		return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("%d payload bytes left after %d values", n, count)}
	}
	return out, nil
}

// payloadErr adjusts errors raised inside a declared-length payload. An
// out-of-bounds read there means the declared length was too short, not that
// the tile buffer ended: that is CorruptStream. Cursor-level errors without a
// stream name get one attached.
func payloadErr(stream string, err error) error {
	var oob *ErrOutOfBounds
	if errors.As(err, &oob) {
		return &ErrCorruptStream{
			Stream: stream,
			Reason: fmt.Sprintf("declared payload length short by at least %d bytes", oob.Need-oob.Have),
		}
	}
	var cs *ErrCorruptStream
	if errors.As(err, &cs) && cs.Stream == "" {
		return &ErrCorruptStream{Stream: stream, Reason: cs.Reason}
	}
	return err
}

// decodePlain reads count varints, zigzag-decoded when the stream is signed.
func decodePlain(body *ByteCursor, count int, signed bool) ([]uint64, error) {
	out := make([]uint64, count)
	for i := range out {
		if signed {
			v, err := body.Varint()
			if err != nil {
				return nil, err
			}
			out[i] = uint64(v)
		} else {
			v, err := body.Uvarint()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	}
	return out, nil
}

// decodeDelta reads a zigzag base value and count-1 zigzag deltas, accumulating
// each onto the running value. Accumulation wraps at 64 bits; the result is
// final for signed and unsigned callers alike.
func decodeDelta(body *ByteCursor, count int) ([]uint64, error) {
	out := make([]uint64, count)
	acc, err := body.Varint()
	if err != nil {
		return nil, err
	}
	out[0] = uint64(acc)
	for i := 1; i < count; i++ {
		d, err := body.Varint()
		if err != nil {
			return nil, err
		}
		acc += d
		out[i] = uint64(acc)
	}
	return out, nil
}

// decodeRLE expands (value, run length) pairs until exactly count values have
// been emitted. A run of zero, a run overshooting count, or a payload ending
// before count is reached are all corrupt.
func decodeRLE(body *ByteCursor, stream string, count int, signed bool) ([]uint64, error) {
	out := make([]uint64, 0, count)
	for len(out) < count {
		var v uint64
		if signed {
			sv, err := body.Varint()
			if err != nil {
				return nil, err
			}
			v = uint64(sv)
		} else {
			uv, err := body.Uvarint()
			if err != nil {
				return nil, err
			}
			v = uv
		}
		run, err := body.Uvarint()
		if err != nil {
			return nil, err
		}
		if run == 0 {
			return nil, &ErrCorruptStream{Stream: stream, Reason: "zero-length run"}
		}
		if run > uint64(count-len(out)) {
			return nil, &ErrCorruptStream{
				Stream: stream,
				Reason: fmt.Sprintf("run of %d overshoots declared count %d", run, count),
			}
		}
		for j := uint64(0); j < run; j++ {
			out = append(out, v)
		}
	}
	return out, nil
}

// decodeDictionary reads a nested stream of distinct values (itself using any
// supported encoding) followed by count indices into it.
func decodeDictionary(body *ByteCursor, stream string, count int, signed bool, depth int) ([]uint64, error) {
	dictCount, err := body.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(stream, dictCount, maxStreamValues); err != nil {
		return nil, err
	}
	dict, err := decodeIntStreamNested(body, stream, int(dictCount), signed, depth+1)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, count)
	for i := range out {
		idx, err := body.Uvarint()
		if err != nil {
			return nil, err
		}
		if idx >= dictCount {
			return nil, &ErrCorruptStream{
				Stream: stream,
				Reason: fmt.Sprintf("dictionary index %d out of range (%d entries)", idx, dictCount),
			}
		}
		out[i] = dict[idx]
	}
	return out, nil
}

// decodePFoR decodes patched frame-of-reference blocks of pforBlockSize values
// (the last block may be shorter). Each block is:
//
//	minimum:  zigzag varint
//	width:    1 byte, 0..64
//	lanes:    ceil(blockLen*width/8) bytes, LSB-first bit packing
//	excCount: uvarint
//	excCount exceptions of (position:uvarint, value:zigzag varint)
//
// A block value is minimum + lane, then exceptions overwrite their positions
// with literal values. Width sums wrap at 64 bits, matching the delta scheme.
func decodePFoR(body *ByteCursor, stream string, count int) ([]uint64, error) {
	out := make([]uint64, 0, count)
	for len(out) < count {
		n := count - len(out)
		if n > pforBlockSize {
			n = pforBlockSize
		}
		minVal, err := body.Varint()
		if err != nil {
			return nil, err
		}
		width, err := body.Byte()
		if err != nil {
			return nil, err
		}
		if width > 64 {
			return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("bit width %d exceeds 64", width)}
		}
		lanes, err := body.Bits(n, uint(width))
		if err != nil {
			return nil, err
		}
		start := len(out)
		for _, lane := range lanes {
			out = append(out, uint64(minVal+int64(lane)))
		}
		excCount, err := body.Uvarint()
		if err != nil {
			return nil, err
		}
		if excCount > uint64(n) {
			return nil, &ErrCorruptStream{
				Stream: stream,
				Reason: fmt.Sprintf("%d exceptions in a block of %d values", excCount, n),
			}
		}
		for e := uint64(0); e < excCount; e++ {
			pos, err := body.Uvarint()
			if err != nil {
				return nil, err
			}
			if pos >= uint64(n) {
				return nil, &ErrCorruptStream{
					Stream: stream,
					Reason: fmt.Sprintf("exception position %d outside block of %d values", pos, n),
				}
			}
			v, err := body.Varint()
			if err != nil {
				return nil, err
			}
			out[start+int(pos)] = uint64(v)
		}
	}
	return out, nil
}
