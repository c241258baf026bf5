// Package coerce centralizes scalar parsing so the classifier, profiler and
// aggregator all share one set of trimming and format rules.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tablero/domain/tabular"
)

// timeFormats are tried in order when parsing date-like strings.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// IsMissing reports whether a raw cell counts as missing: nil or a string
// that is empty after trimming.
func IsMissing(raw interface{}) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ParseNumber attempts to interpret a raw cell as a finite number.
// Strings are trimmed first.
func ParseNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return finite(n)
	}
	return 0, false
}

func finite(n float64) (float64, bool) {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// ParseTime attempts to interpret a raw cell as a calendar date/time.
// Numbers are not treated as epoch timestamps; a column of numbers is the
// classifier's business, not the date parser's.
func ParseTime(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, format := range timeFormats {
			if t, err := time.Parse(format, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseBool attempts to interpret a raw cell as a boolean.
func ParseBool(raw interface{}) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

// Resolve converts a raw cell into a tagged scalar, trying numeric before
// temporal so an all-digit value lands on the numeric side.
func Resolve(raw interface{}) tabular.Value {
	if IsMissing(raw) {
		return tabular.NewMissingValue()
	}
	if n, ok := ParseNumber(raw); ok {
		return tabular.NewNumberValue(raw, n)
	}
	if b, ok := ParseBool(raw); ok {
		return tabular.NewBoolValue(raw, b)
	}
	if t, ok := ParseTime(raw); ok {
		return tabular.NewDateValue(raw, t)
	}
	if s, ok := raw.(string); ok {
		return tabular.NewTextValue(raw, strings.TrimSpace(s))
	}
	return tabular.NewTextValue(raw, toString(raw))
}

// toString renders non-string scalars the way the store would.
func toString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", raw)
}
