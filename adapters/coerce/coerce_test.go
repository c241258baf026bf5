package coerce

import (
	"testing"
	"time"

	"tablero/domain/tabular"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want float64
		ok   bool
	}{
		{"plain integer string", "42", 42, true},
		{"decimal string", "3.14", 3.14, true},
		{"padded string", "  10 ", 10, true},
		{"negative", "-5", -5, true},
		{"scientific notation", "1e3", 1000, true},
		{"native float", 2.5, 2.5, true},
		{"native int", 7, 7, true},
		{"text", "hello", 0, false},
		{"empty string", "", 0, false},
		{"infinity", "Inf", 0, false},
		{"nan", "NaN", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseNumber(%v) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		ok   bool
	}{
		{"iso date", "2024-03-05", true},
		{"rfc3339", "2024-03-05T10:30:00Z", true},
		{"datetime space", "2024-03-05 10:30:00", true},
		{"slash us", "03/05/2024", true},
		{"slash ymd", "2024/03/05", true},
		{"day-month-name", "05-Mar-2024", true},
		{"native time", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"numbers are not epochs", 1700000000, false},
		{"text", "yesterday", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseTime(tt.raw); ok != tt.ok {
				t.Errorf("ParseTime(%v) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
		})
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing(nil) {
		t.Error("nil should be missing")
	}
	if !IsMissing("   ") {
		t.Error("whitespace-only string should be missing")
	}
	if IsMissing(0) {
		t.Error("zero is a present value, not missing")
	}
	if IsMissing("0") {
		t.Error("the string zero is present")
	}
}

func TestResolveOrder(t *testing.T) {
	// Numeric wins over temporal: an all-digit value resolves as a number.
	if v := Resolve("2024"); v.Kind != tabular.KindNumber {
		t.Errorf("Resolve(2024) kind = %s, want number", v.Kind)
	}
	if v := Resolve("2024-03-05"); v.Kind != tabular.KindDate {
		t.Errorf("Resolve(date) kind = %s, want date", v.Kind)
	}
	if v := Resolve("true"); v.Kind != tabular.KindBool {
		t.Errorf("Resolve(true) kind = %s, want bool", v.Kind)
	}
	if v := Resolve(" texto "); v.Kind != tabular.KindText || v.Text != "texto" {
		t.Errorf("Resolve(text) = %+v, want trimmed text", v)
	}
	if v := Resolve(""); !v.IsMissing() {
		t.Errorf("Resolve(empty) should be missing, got %s", v.Kind)
	}
}

func TestCanonicalFormUnifiesTypes(t *testing.T) {
	// "1" and 1 share one canonical form for distinct counting.
	if Resolve("1").Canonical() != Resolve(1.0).Canonical() {
		t.Error("string and numeric 1 should share a canonical form")
	}
}
