package decoder

// Wire-building helpers shared by the decoder tests. Fixtures are assembled
// byte by byte so each test shows the exact layout it decodes.

// appendUvarint appends v as an LEB128 varint.
func appendUvarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// appendZigzag appends v as a zigzag-encoded varint.
func appendZigzag(b []byte, v int64) []byte {
	return appendUvarint(b, uint64(v<<1)^uint64(v>>63))
}

// intStream frames a payload as a wire integer stream:
// encoding byte, payload length as uvarint, payload.
func intStream(enc StreamEncoding, payload []byte) []byte {
	b := []byte{byte(enc)}
	b = appendUvarint(b, uint64(len(payload)))
	return append(b, payload...)
}

// plainUnsigned builds a Plain-encoded stream of unsigned values.
func plainUnsigned(values ...uint64) []byte {
	var p []byte
	for _, v := range values {
		p = appendUvarint(p, v)
	}
	return intStream(EncodingPlain, p)
}

// plainSigned builds a Plain-encoded stream of zigzag values.
func plainSigned(values ...int64) []byte {
	var p []byte
	for _, v := range values {
		p = appendZigzag(p, v)
	}
	return intStream(EncodingPlain, p)
}

// deltaStream builds a Delta-encoded stream that decodes to values.
func deltaStream(values ...int64) []byte {
	var p []byte
	for i, v := range values {
		if i == 0 {
			p = appendZigzag(p, v)
		} else {
			p = appendZigzag(p, v-values[i-1])
		}
	}
	return intStream(EncodingDelta, p)
}

// packBits packs values LSB-first within each byte at the given width.
func packBits(values []uint64, width uint) []byte {
	out := make([]byte, (len(values)*int(width)+7)/8)
	bit := 0
	for _, v := range values {
		for j := uint(0); j < width; j++ {
			if v&(1<<j) != 0 {
				out[bit>>3] |= 1 << (bit & 7)
			}
			bit++
		}
	}
	return out
}

// appendName appends a length-prefixed name.
func appendName(b []byte, name string) []byte {
	b = appendUvarint(b, uint64(len(name)))
	return append(b, name...)
}

// inlineVertexSection builds an inline-mode vertex section from coordinate
// pairs, delta-encoding them against a layer-start cursor at (0, 0).
func inlineVertexSection(coords ...Coordinate) []byte {
	deltas := make([]int64, 0, 2*len(coords))
	var x, y int32
	for _, c := range coords {
		deltas = append(deltas, int64(c.X-x), int64(c.Y-y))
		x, y = c.X, c.Y
	}
	b := []byte{vertexModeInline}
	b = appendUvarint(b, uint64(len(coords)))
	return append(b, plainSigned(deltas...)...)
}
