package domain

import (
	"fmt"
	"strconv"
)

// ValueKind discriminates the closed set of parameter value types.
type ValueKind uint8

const (
	// KindString is a string-valued parameter.
	KindString ValueKind = iota
	// KindInt is an integer-valued parameter.
	KindInt
	// KindFloat is a float-valued parameter.
	KindFloat
	// KindBool is a boolean-valued parameter.
	KindBool
)

// Value is a typed parameter value. It is a closed tagged variant so that
// fingerprinting and consumers get compile-time exhaustiveness instead of
// an open any-typed blob.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue creates a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue creates an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue creates a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the value's kind tag.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string { return v.s }

// AsInt returns the integer payload. Valid only for KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload. Valid only for KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool { return v.b }

// Canonical returns a deterministic textual encoding of the value, prefixed
// with its kind tag so that equal text across kinds cannot collide
// (e.g. string "1" vs int 1). Used by the parameter fingerprint.
func (v Value) Canonical() string {
	switch v.kind {
	case KindString:
		return "s:" + v.s
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	default:
		// Unreachable with the closed constructor set; a new kind without a
		// canonical encoding would silently break fingerprint determinism.
		panic(fmt.Sprintf("domain: unknown value kind %d", v.kind))
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String implements fmt.Stringer for logs and error metadata.
func (v Value) String() string {
	return v.Canonical()
}
