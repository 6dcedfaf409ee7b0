package mlt

import "strconv"

// ValueType discriminates the scalar variants a property value can hold.
type ValueType int

const (
	// ValueTypeNull indicates an absent value.
	ValueTypeNull ValueType = iota

	// ValueTypeInt holds a 64-bit integer. Values decoded from unsigned
	// columns carry the same 64-bit pattern; read them with Uint.
	ValueTypeInt

	// ValueTypeFloat holds a 64-bit float.
	ValueTypeFloat

	// ValueTypeBool holds a boolean.
	ValueTypeBool

	// ValueTypeString holds a UTF-8 string.
	ValueTypeString
)

// String returns the human-readable name of the value type.
func (t ValueType) String() string {
	switch t {
	case ValueTypeNull:
		return "Null"
	case ValueTypeInt:
		return "Int"
	case ValueTypeFloat:
		return "Float"
	case ValueTypeBool:
		return "Bool"
	case ValueTypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is one decoded property value. The zero value is null.
//
// Check the variant with Type or IsNull, then read it with the matching
// accessor. Accessors return the type's zero value on variant mismatch;
// they never convert between variants.
type Value struct {
	typ ValueType
	i   int64
	f   float64
	b   bool
	s   string
}

// Type returns the variant this value holds.
func (v Value) Type() ValueType { return v.typ }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.typ == ValueTypeNull }

// Int returns the integer payload, or 0 if the value is not an integer.
func (v Value) Int() int64 {
	if v.typ != ValueTypeInt {
		return 0
	}
	return v.i
}

// Uint returns the integer payload reinterpreted as unsigned.
//
// Values decoded from UINT64 columns keep their full 64-bit pattern; this is
// the lossless way to read them.
func (v Value) Uint() uint64 {
	if v.typ != ValueTypeInt {
		return 0
	}
	return uint64(v.i)
}

// Float returns the float payload, or 0 if the value is not a float.
func (v Value) Float() float64 {
	if v.typ != ValueTypeFloat {
		return 0
	}
	return v.f
}

// Bool returns the boolean payload, or false if the value is not a boolean.
func (v Value) Bool() bool {
	if v.typ != ValueTypeBool {
		return false
	}
	return v.b
}

// Str returns the string payload, or "" if the value is not a string.
func (v Value) Str() string {
	if v.typ != ValueTypeString {
		return ""
	}
	return v.s
}

// Any returns the payload as a plain Go value: int64, float64, bool, string,
// or nil for null. Useful for handing properties to encoding/json or other
// map[string]interface{} consumers.
func (v Value) Any() interface{} {
	switch v.typ {
	case ValueTypeInt:
		return v.i
	case ValueTypeFloat:
		return v.f
	case ValueTypeBool:
		return v.b
	case ValueTypeString:
		return v.s
	default:
		return nil
	}
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.typ {
	case ValueTypeInt:
		return strconv.FormatInt(v.i, 10)
	case ValueTypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueTypeBool:
		return strconv.FormatBool(v.b)
	case ValueTypeString:
		return v.s
	default:
		return "null"
	}
}

// Property is one key/value pair on a feature. A feature's properties keep
// the layer's column declaration order.
type Property struct {
	Key   string
	Value Value
}
