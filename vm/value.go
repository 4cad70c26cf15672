package vm

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// Kind identifies the representation of a Value.
type Kind byte

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

var kindNames = map[Kind]string{
	KindInt:    "Int",
	KindFloat:  "Float",
	KindString: "String",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a single operand cell. The machine only computes on Int and
// Float values; String exists so that type-checking stacks have a real
// non-numeric kind to reject.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntValue creates an integer Value.
func IntValue(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// FloatValue creates a floating-point Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber returns true for Int and Float values.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Int returns the integer payload. Valid only for KindInt.
func (v Value) Int() int64 {
	return v.i
}

// Float64 returns the value as a float64, coercing integers.
func (v Value) Float64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string {
	return v.s
}

// Equal reports kind-and-payload equality.
func (v Value) Equal(other Value) bool {
	return v == other
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	}
	return fmt.Sprintf("Value(%d)", v.kind)
}

// ---------------------------------------------------------------------------
// Numeric combination
// ---------------------------------------------------------------------------

// Binary arithmetic preserves integers where it can: Int op Int stays Int,
// any Float operand widens the result to Float. Division is the exception
// and is always true (float) division, handled by the Calculator.

func addValues(left, right Value) Value {
	if left.kind == KindInt && right.kind == KindInt {
		return IntValue(left.i + right.i)
	}
	return FloatValue(left.Float64() + right.Float64())
}

func subValues(left, right Value) Value {
	if left.kind == KindInt && right.kind == KindInt {
		return IntValue(left.i - right.i)
	}
	return FloatValue(left.Float64() - right.Float64())
}

func mulValues(left, right Value) Value {
	if left.kind == KindInt && right.kind == KindInt {
		return IntValue(left.i * right.i)
	}
	return FloatValue(left.Float64() * right.Float64())
}

func divValues(left, right Value) Value {
	return FloatValue(left.Float64() / right.Float64())
}
