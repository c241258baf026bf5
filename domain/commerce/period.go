package commerce

import (
	"fmt"
	"math"
	"time"
)

// PeriodKey is the canonical "YYYY-MM" UTC month identifier used for
// bucketing. Two timestamps share a key iff they fall in the same UTC
// calendar month.
type PeriodKey string

// PeriodUnknown is the sentinel for missing or unparseable timestamps.
// It never matches a real period.
const PeriodUnknown PeriodKey = "unknown"

// PeriodKeyOf formats the UTC year and zero-padded 1-based month of t.
func PeriodKeyOf(t time.Time) PeriodKey {
	if t.IsZero() {
		return PeriodUnknown
	}
	u := t.UTC()
	return PeriodKey(fmt.Sprintf("%04d-%02d", u.Year(), int(u.Month())))
}

// MonthsBack returns the first day (UTC) of the month n months before from.
func MonthsBack(n int, from time.Time) time.Time {
	u := from.UTC()
	return time.Date(u.Year(), u.Month()-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// EnumeratePeriods walks month-by-month from from's first-of-month through
// to inclusive, one calendar month per step even across year boundaries.
func EnumeratePeriods(from, to time.Time) []PeriodKey {
	if from.IsZero() || to.IsZero() {
		return nil
	}
	cur := MonthsBack(0, from)
	end := MonthsBack(0, to)
	var keys []PeriodKey
	for !cur.After(end) {
		keys = append(keys, PeriodKeyOf(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}

// ChangePct computes the period-over-period delta in percent. A previous of
// zero yields 100 for any growth and 0 when both periods are zero.
func ChangePct(prev, curr float64) float64 {
	if prev == 0 {
		if curr > 0 {
			return 100
		}
		return 0
	}
	return (curr - prev) / math.Abs(prev) * 100
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthLabel renders a period key as a human label, e.g. "mar 2024".
func (pk PeriodKey) MonthLabel() string {
	var year, month int
	if _, err := fmt.Sscanf(string(pk), "%d-%d", &year, &month); err != nil || month < 1 || month > 12 {
		return string(pk)
	}
	return fmt.Sprintf("%s %d", spanishMonths[month-1], year)
}
