// Package types defines runtime value types for ulox.
package types

import (
	"strconv"

	"github.com/kolkov/ulox/internal/token"
)

// Kind represents the type of a ulox value.
type Kind uint8

const (
	KindNil  Kind = iota // nil
	KindBool             // true or false
	KindNum              // Numeric value
	KindStr              // String value
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNum:
		return "number"
	case KindStr:
		return "string"
	default:
		return "unknown"
	}
}

// Value represents a ulox runtime value.
// Uses tagged union pattern; the zero Value is nil.
// Values are immutable and passed by value.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
}

// Constructors

// Nil returns the nil value.
func Nil() Value {
	return Value{kind: KindNil}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Num creates a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNum, num: n}
}

// Str creates a string value.
func Str(s string) Value {
	return Value{kind: KindStr, str: s}
}

// Accessors

// Kind returns the value's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil returns true if the value is nil.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// IsBool returns true if the value is a boolean.
func (v Value) IsBool() bool {
	return v.kind == KindBool
}

// IsNum returns true if the value is a number.
func (v Value) IsNum() bool {
	return v.kind == KindNum
}

// IsStr returns true if the value is a string.
func (v Value) IsStr() bool {
	return v.kind == KindStr
}

// AsNum returns the numeric payload, or 0 for other kinds.
func (v Value) AsNum() float64 {
	return v.num
}

// AsStr returns the string payload, or "" for other kinds.
func (v Value) AsStr() string {
	return v.str
}

// AsBool returns the boolean payload, or false for other kinds.
// Use Truthy for the language's truthiness rule.
func (v Value) AsBool() bool {
	return v.b
}

// Truthy reports the boolean meaning of v: nil and false are false,
// every other value (including 0 and "") is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// String returns the display form of the value: numbers in their shortest
// decimal form, strings verbatim, and true, false or nil.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNum:
		return token.FormatNumber(v.num)
	case KindStr:
		return v.str
	default:
		return "nil"
	}
}

// Describe returns the debug form used in error messages, such as
// Number(7), String("a"), True or Nil.
func (v Value) Describe() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindNum:
		return "Number(" + token.FormatNumber(v.num) + ")"
	case KindStr:
		return "String(" + strconv.Quote(v.str) + ")"
	default:
		return "Nil"
	}
}

// Comparison

// Equal reports whether a and b are the same value. Values of different
// kinds are never equal; numbers compare by IEEE 754 rules, so NaN is not
// equal to itself.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindNum:
		return a.num == b.num
	case KindStr:
		return a.str == b.str
	default:
		return true
	}
}
