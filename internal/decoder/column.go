package decoder

import "fmt"

// Column is one decoded column: one Value per row. Rows marked absent by the
// presence bitmap are left null.
type Column struct {
	Name   string
	Type   PhysicalType
	Values []Value
}

// decodeColumn decodes one column block for rows rows. name is the property
// key; stream names the column in errors.
//
// Column block layout:
//
//	byte 0:  physical type (0=BOOL 1=INT64 2=UINT64 3=FLOAT64 4=STRING)
//	byte 1:  flags (bit 0: nullable)
//	if nullable: presence bitmap, ceil(rows/8) bytes, bit i set = row i present
//	value payload for the present rows only
//
// With a presence bitmap, value #k in the payload belongs to the k-th present
// row, so absent rows occupy a row position without consuming a value slot.
func decodeColumn(cur *ByteCursor, name, stream string, rows int) (*Column, error) {
	physical, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	if physical > byte(PhysicalString) {
		return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown physical type %d", physical)}
	}
	flags, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	if flags&^columnFlagNullable != 0 {
		return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown column flags %#x", flags)}
	}
	var present []bool
	n := rows
	if flags&columnFlagNullable != 0 {
		present, n, err = decodePresence(cur, rows)
		if err != nil {
			return nil, err
		}
	}

	col := &Column{Name: name, Type: PhysicalType(physical), Values: make([]Value, rows)}
	switch col.Type {
	case PhysicalBool:
		bits, err := cur.Bits(n, 1)
		if err != nil {
			return nil, err
		}
		scatter(col.Values, present, func(k int) Value {
			return Value{Type: ValueBool, Bool: bits[k] != 0}
		})
	case PhysicalInt64:
		ints, err := decodeIntStream(cur, stream, n, true)
		if err != nil {
			return nil, err
		}
		scatter(col.Values, present, func(k int) Value {
			return Value{Type: ValueInt, Int: int64(ints[k])}
		})
	case PhysicalUint64:
		ints, err := decodeIntStream(cur, stream, n, false)
		if err != nil {
			return nil, err
		}
		scatter(col.Values, present, func(k int) Value {
			return Value{Type: ValueInt, Int: int64(ints[k])}
		})
	case PhysicalFloat64:
		floats := make([]float64, n)
		for i := range floats {
			floats[i], err = cur.Float64()
			if err != nil {
				return nil, err
			}
		}
		scatter(col.Values, present, func(k int) Value {
			return Value{Type: ValueFloat, Float: floats[k]}
		})
	case PhysicalString:
		strs, err := decodeStringColumn(cur, stream, n)
		if err != nil {
			return nil, err
		}
		scatter(col.Values, present, func(k int) Value {
			return Value{Type: ValueString, Str: strs[k]}
		})
	}
	return col, nil
}

// decodePresence reads the presence bitmap: one bit per row, LSB-first within
// each byte. Returns per-row flags and the number of present rows.
func decodePresence(cur *ByteCursor, rows int) ([]bool, int, error) {
	raw, err := cur.Bytes((rows + 7) / 8)
	if err != nil {
		return nil, 0, err
	}
	present := make([]bool, rows)
	n := 0
	for i := range present {
		if raw[i>>3]&(1<<(i&7)) != 0 {
			present[i] = true
			n++
		}
	}
	return present, n, nil
}

// scatter assigns the k-th decoded value to the k-th present row. Absent rows
// keep the null zero value. present == nil means every row is present.
func scatter(values []Value, present []bool, value func(k int) Value) {
	k := 0
	for row := range values {
		if present != nil && !present[row] {
			continue
		}
		values[row] = value(k)
		k++
	}
}

// decodeStringColumn decodes n strings in one of two layouts, selected by a
// mode byte: 0 stores the strings back to back with an end-offset stream, 1
// stores a shared string table plus one table index per value.
func decodeStringColumn(cur *ByteCursor, stream string, n int) ([]string, error) {
	mode, err := cur.Byte()
	if err != nil {
		return nil, err
	}
	switch mode {
	case stringModePlain:
		return decodeStringTable(cur, stream, n)
	case stringModeDict:
		dictSize, err := cur.Uvarint()
		if err != nil {
			return nil, err
		}
		if err := checkCount(stream, dictSize, maxStreamValues); err != nil {
			return nil, err
		}
		table, err := decodeStringTable(cur, stream, int(dictSize))
		if err != nil {
			return nil, err
		}
		indices, err := decodeIntStream(cur, stream, n, false)
		if err != nil {
			return nil, err
		}
		out := make([]string, n)
		for i, idx := range indices {
			if idx >= dictSize {
				return nil, &ErrCorruptStream{
					Stream: stream,
					Reason: fmt.Sprintf("string table index %d out of range (%d entries)", idx, dictSize),
				}
			}
			out[i] = table[idx]
		}
		return out, nil
	default:
		return nil, &ErrCorruptStream{Stream: stream, Reason: fmt.Sprintf("unknown string column mode %d", mode)}
	}
}

// decodeStringTable reads n strings stored as an end-offset stream plus one
// contiguous byte run. Offset i is the cumulative end of string i, so string i
// spans [end[i-1], end[i]) with end[-1] = 0; offsets are typically
// delta-encoded on the wire. The final end must equal the byte run length.
func decodeStringTable(cur *ByteCursor, stream string, n int) ([]string, error) {
	ends, err := decodeIntStream(cur, stream, n, false)
	if err != nil {
		return nil, err
	}
	dataLen, err := cur.Uvarint()
	if err != nil {
		return nil, err
	}
	if err := checkCount(stream, dataLen, maxStringDataBytes); err != nil {
		return nil, err
	}
	data, err := cur.Bytes(int(dataLen))
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	var prev uint64
	for i, end := range ends {
		if end < prev || end > dataLen {
			return nil, &ErrCorruptStream{
				Stream: stream,
				Reason: fmt.Sprintf("string offset %d out of order or beyond %d data bytes", end, dataLen),
			}
		}
		out[i] = string(data[prev:end])
		prev = end
	}
	if prev != dataLen {
		return nil, &ErrCorruptStream{
			Stream: stream,
			Reason: fmt.Sprintf("%d string data bytes unreferenced", dataLen-prev),
		}
	}
	return out, nil
}

// buildProperties assembles one feature's ordered property list from the
// layer's decoded columns. Keys follow column declaration order; rows the
// presence bitmap marked absent contribute no key.
func buildProperties(columns []*Column, row int) []Property {
	if len(columns) == 0 {
		return nil
	}
	props := make([]Property, 0, len(columns))
	for _, col := range columns {
		v := col.Values[row]
		if v.Type == ValueNull {
			continue
		}
		props = append(props, Property{Key: col.Name, Value: v})
	}
	return props
}
