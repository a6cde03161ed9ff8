package ast

import (
	"strconv"
	"time"
)

// ValueKind indicates which field of a Value is meaningful.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindDate
)

// Value is a literal operand inside a Comparison or Between. Raw keeps
// the original spelling for diagnostics; equality compares the typed
// field, not Raw.
type Value struct {
	Kind ValueKind
	Raw  string // original spelling from the input
	Num  float64
	Str  string
	Date time.Time
}

// NumberValue builds a numeric value.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Raw: strconv.FormatFloat(n, 'f', -1, 64), Num: n}
}

// StringValue builds a string value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Raw: s, Str: s}
}

// DateValue builds a date value, keeping the original spelling.
func DateValue(t time.Time, raw string) Value {
	return Value{Kind: KindDate, Raw: raw, Date: t}
}

// Equal reports semantic equality. Raw spelling does not participate,
// so "30" and "30.0" compare equal as numbers.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindString:
		return v.Str == o.Str
	case KindDate:
		return v.Date.Equal(o.Date)
	default:
		return false
	}
}

// String returns the original spelling.
func (v Value) String() string { return v.Raw }

// valuesEqual compares two value lists element-wise. Order matters:
// merged lists preserve left-to-right input order and are not sets.
func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
