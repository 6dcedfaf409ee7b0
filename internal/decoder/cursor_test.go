package decoder

import (
	"errors"
	"math"
	"testing"
)

func TestCursorSequentialReads(t *testing.T) {
	cur := NewByteCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	b, err := cur.Byte()
	if err != nil {
		t.Fatalf("Byte failed: %v", err)
	}
	if b != 0x01 {
		t.Errorf("Expected 0x01, got %#x", b)
	}

	bs, err := cur.Bytes(2)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if bs[0] != 0x02 || bs[1] != 0x03 {
		t.Errorf("Expected [02 03], got %v", bs)
	}

	if err := cur.Skip(1); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if cur.Offset() != 4 {
		t.Errorf("Expected offset 4, got %d", cur.Offset())
	}
	if cur.Remaining() != 1 {
		t.Errorf("Expected 1 byte remaining, got %d", cur.Remaining())
	}
}

func TestCursorOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		op   func(*ByteCursor) error
	}{
		{"byte past end", func(c *ByteCursor) error {
			c.Skip(2)
			_, err := c.Byte()
			return err
		}},
		{"bytes past end", func(c *ByteCursor) error {
			_, err := c.Bytes(3)
			return err
		}},
		{"negative bytes", func(c *ByteCursor) error {
			_, err := c.Bytes(-1)
			return err
		}},
		{"skip past end", func(c *ByteCursor) error {
			return c.Skip(3)
		}},
		{"float64 past end", func(c *ByteCursor) error {
			_, err := c.Float64()
			return err
		}},
		{"truncated varint", func(c *ByteCursor) error {
			_, err := NewByteCursor([]byte{0x80}).Uvarint()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op(NewByteCursor([]byte{0xaa, 0xbb}))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var oob *ErrOutOfBounds
			if !errors.As(err, &oob) {
				t.Errorf("Expected ErrOutOfBounds, got %T: %v", err, err)
			}
		})
	}
}

func TestUvarint(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{"zero", []byte{0x00}, 0},
		{"single byte max", []byte{0x7f}, 127},
		{"two bytes", []byte{0x80, 0x01}, 128},
		{"extent 4096", []byte{0x80, 0x20}, 4096},
		{"max uint64", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewByteCursor(tt.data)
			got, err := cur.Uvarint()
			if err != nil {
				t.Fatalf("Uvarint failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
			if cur.Remaining() != 0 {
				t.Errorf("Expected full consumption, %d bytes left", cur.Remaining())
			}
		})
	}
}

func TestUvarintOverflow(t *testing.T) {
	// Ten continuation-heavy bytes encode more than 64 bits.
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}
	_, err := NewByteCursor(data).Uvarint()
	var cs *ErrCorruptStream
	if !errors.As(err, &cs) {
		t.Errorf("Expected ErrCorruptStream, got %T: %v", err, err)
	}
}

func TestVarintZigzag(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, 63, -64, 4096, -4096, math.MaxInt64, math.MinInt64}

	for _, want := range values {
		data := appendZigzag(nil, want)
		got, err := NewByteCursor(data).Varint()
		if err != nil {
			t.Fatalf("Varint(%d) failed: %v", want, err)
		}
		if got != want {
			t.Errorf("Expected %d, got %d", want, got)
		}
	}
}

func TestFloat64(t *testing.T) {
	// 1.5 in IEEE-754: 0x3FF8000000000000, little-endian on the wire.
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x3f}
	got, err := NewByteCursor(data).Float64()
	if err != nil {
		t.Fatalf("Float64 failed: %v", err)
	}
	if got != 1.5 {
		t.Errorf("Expected 1.5, got %v", got)
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		name   string
		values []uint64
		width  uint
	}{
		{"width 1", []uint64{1, 0, 1, 1, 0, 0, 0, 1, 1}, 1},
		{"width 3", []uint64{5, 1, 7, 2}, 3},
		{"width 7 crosses bytes", []uint64{127, 0, 64, 33}, 7},
		{"width 64", []uint64{math.MaxUint64, 0, 1}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewByteCursor(packBits(tt.values, tt.width))
			got, err := cur.Bits(len(tt.values), tt.width)
			if err != nil {
				t.Fatalf("Bits failed: %v", err)
			}
			for i := range tt.values {
				if got[i] != tt.values[i] {
					t.Errorf("Value %d: expected %d, got %d", i, tt.values[i], got[i])
				}
			}
			if cur.Remaining() != 0 {
				t.Errorf("Expected full consumption, %d bytes left", cur.Remaining())
			}
		})
	}
}

func TestBitsZeroWidth(t *testing.T) {
	cur := NewByteCursor(nil)
	got, err := cur.Bits(4, 0)
	if err != nil {
		t.Fatalf("Bits failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 values, got %d", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("Value %d: expected 0, got %d", i, v)
		}
	}
}

func TestSubCursor(t *testing.T) {
	cur := NewByteCursor([]byte{0x01, 0x02, 0x03, 0x04})

	sub, err := cur.Sub(2)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	// Parent advanced past the carved range.
	if cur.Offset() != 2 {
		t.Errorf("Expected parent offset 2, got %d", cur.Offset())
	}
	if sub.Remaining() != 2 {
		t.Errorf("Expected 2 bytes in sub, got %d", sub.Remaining())
	}

	// Reads inside the child cannot touch parent bytes.
	if _, err := sub.Bytes(3); err == nil {
		t.Error("Expected out of bounds reading past sub range")
	}
}
