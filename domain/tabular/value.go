package tabular

import (
	"strconv"
	"time"
)

// Kind is the resolved storage type of a scalar cell value.
type Kind string

const (
	KindNumber  Kind = "number"
	KindText    Kind = "text"
	KindDate    Kind = "date"
	KindBool    Kind = "bool"
	KindMissing Kind = "missing"
)

// Value is a tagged scalar resolved once per column instead of re-inspecting
// the raw cell on every access.
type Value struct {
	Kind Kind
	Num  float64
	Text string
	Time time.Time
	Bool bool
	Raw  interface{}
}

// NewNumberValue creates a numeric value
func NewNumberValue(raw interface{}, n float64) Value {
	return Value{Kind: KindNumber, Num: n, Raw: raw}
}

// NewTextValue creates a textual value
func NewTextValue(raw interface{}, s string) Value {
	return Value{Kind: KindText, Text: s, Raw: raw}
}

// NewDateValue creates a date-like value
func NewDateValue(raw interface{}, t time.Time) Value {
	return Value{Kind: KindDate, Time: t, Raw: raw}
}

// NewBoolValue creates a boolean value
func NewBoolValue(raw interface{}, b bool) Value {
	return Value{Kind: KindBool, Bool: b, Raw: raw}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Canonical returns the canonical string form used for distinct counting and
// frequency grouping. A numeric 1 and the string "1" share one form.
func (v Value) Canonical() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindDate:
		return v.Time.UTC().Format(time.RFC3339)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}
