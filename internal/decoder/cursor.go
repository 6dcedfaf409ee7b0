package decoder

import (
	"encoding/binary"
	"math"
)

// ByteCursor is a bounds-checked forward reader over an immutable tile buffer.
// Every read validates availability first and fails with ErrOutOfBounds instead
// of over-reading. The cursor never mutates the buffer and never seeks backward.
//
// Multi-byte fixed-width values are little-endian, per the MapLibre Tile format.
type ByteCursor struct {
	buf []byte
	off int
}

// NewByteCursor wraps buf. The cursor aliases buf; callers must not mutate it
// while decoding.
func NewByteCursor(buf []byte) *ByteCursor {
	return &ByteCursor{buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *ByteCursor) Remaining() int {
	return len(c.buf) - c.off
}

// Offset returns the number of bytes consumed so far.
func (c *ByteCursor) Offset() int {
	return c.off
}

func (c *ByteCursor) outOfBounds(need int) error {
	return &ErrOutOfBounds{Offset: c.off, Need: need, Have: c.Remaining()}
}

// Byte reads a single byte.
func (c *ByteCursor) Byte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, c.outOfBounds(1)
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Bytes reads n bytes without copying; the returned slice aliases the buffer.
func (c *ByteCursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, c.outOfBounds(n)
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Skip advances past n bytes.
func (c *ByteCursor) Skip(n int) error {
	if n < 0 || c.Remaining() < n {
		return c.outOfBounds(n)
	}
	c.off += n
	return nil
}

// Sub carves the next n bytes out as a child cursor and advances past them.
// Declared-length payloads decode through a child so over- and under-consumption
// are both detectable.
func (c *ByteCursor) Sub(n int) (*ByteCursor, error) {
	b, err := c.Bytes(n)
	if err != nil {
		return nil, err
	}
	return &ByteCursor{buf: b}, nil
}

// Uvarint reads an unsigned varint: 7 payload bits per byte, high bit set on
// continuation bytes, at most 10 bytes. A truncated varint is ErrOutOfBounds;
// one encoding more than 64 bits is ErrCorruptStream.
func (c *ByteCursor) Uvarint() (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; ; i++ {
		if c.Remaining() == 0 {
			return 0, c.outOfBounds(1)
		}
		b := c.buf[c.off]
		c.off++
		// Byte 10 carries only the top bit of a 64-bit value.
		if i == 9 && b > 1 {
			return 0, &ErrCorruptStream{Reason: "varint exceeds 64 bits"}
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// Varint reads a zigzag-encoded signed varint. Zigzag maps signed to unsigned so
// small magnitudes of either sign stay short: encoded = (n << 1) ^ (n >> 63).
func (c *ByteCursor) Varint() (int64, error) {
	u, err := c.Uvarint()
	if err != nil {
		return 0, err
	}
	return unzigzag(u), nil
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Float64 reads an IEEE-754 double, little-endian.
func (c *ByteCursor) Float64() (float64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// Bits reads count bit-packed values of the given width. Values are packed
// LSB-first within each byte, bytes in stream order; the final byte may carry
// unused padding bits, which are ignored. width must be at most 64. A width of
// zero consumes nothing and yields count zeros.
func (c *ByteCursor) Bits(count int, width uint) ([]uint64, error) {
	out := make([]uint64, count)
	if width == 0 || count == 0 {
		return out, nil
	}
	raw, err := c.Bytes((count*int(width) + 7) / 8)
	if err != nil {
		return nil, err
	}
	bit := 0
	for i := range out {
		var v uint64
		for j := uint(0); j < width; j++ {
			if raw[bit>>3]&(1<<(bit&7)) != 0 {
				v |= 1 << j
			}
			bit++
		}
		out[i] = v
	}
	return out, nil
}
