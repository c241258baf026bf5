package tabular

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"tablero/adapters/coerce"
	"tablero/domain/tabular"
)

const (
	maxSampleValues    = 5
	topValuesCap       = 5
	topValuesManualCap = 10
)

// Granularity cutoffs in days, strict lower bounds: a span of exactly 730
// days is quarter-grained, not year-grained.
const (
	yearSpanDays    = 730
	quarterSpanDays = 180
	monthSpanDays   = 90
	weekSpanDays    = 30
)

// Profiler builds per-column statistics over a row set.
type Profiler struct {
	now func() time.Time
}

// NewProfiler creates a profiler using the wall clock for degenerate
// temporal summaries.
func NewProfiler() *Profiler {
	return &Profiler{now: time.Now}
}

// NewProfilerWithClock creates a profiler with an injected clock.
func NewProfilerWithClock(now func() time.Time) *Profiler {
	return &Profiler{now: now}
}

// Profile extracts the named column from the rows, infers its type and
// builds the matching summary.
func (p *Profiler) Profile(name string, rows []tabular.Row) tabular.ColumnProfile {
	values := resolveColumn(name, rows)
	inferred := ClassifyValues(values)
	return p.build(name, inferred, values, topValuesCap)
}

// ProfileDeclared profiles the column under an externally declared type
// instead of inferring one. The categorical cap is wider on this path.
func (p *Profiler) ProfileDeclared(col tabular.DeclaredColumn, rows []tabular.Row) (tabular.ColumnProfile, error) {
	inferred, err := col.InferredType()
	if err != nil {
		return tabular.ColumnProfile{}, err
	}
	values := resolveColumn(col.Name, rows)
	return p.build(col.Name, inferred, values, topValuesManualCap), nil
}

// resolveColumn turns the raw cells of one column into tagged scalars,
// resolved once so downstream builders never re-inspect raw values.
func resolveColumn(name string, rows []tabular.Row) []tabular.Value {
	values := make([]tabular.Value, 0, len(rows))
	for _, row := range rows {
		raw, ok := row[name]
		if !ok {
			values = append(values, tabular.NewMissingValue())
			continue
		}
		values = append(values, coerce.Resolve(raw))
	}
	return values
}

func (p *Profiler) build(name string, inferred tabular.InferredType, values []tabular.Value, categoryCap int) tabular.ColumnProfile {
	profile := tabular.ColumnProfile{
		Name:         name,
		InferredType: inferred,
		TotalCount:   len(values),
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		if v.IsMissing() {
			profile.MissingCount++
			continue
		}
		distinct[v.Canonical()] = true
		if len(profile.SampleValues) < maxSampleValues {
			profile.SampleValues = append(profile.SampleValues, v.Raw)
		}
	}
	profile.DistinctCount = len(distinct)

	switch inferred {
	case tabular.TypeNumeric:
		profile.Summary.Numeric = numericSummary(values)
		profile.Distribution = distributionMarkers(values)
	case tabular.TypeTemporal:
		profile.Summary.Temporal = p.temporalSummary(values)
	default:
		profile.Summary.Categorical = categoricalSummary(values, categoryCap)
	}
	return profile
}

// numericSummary computes min/max/sum/average over the full parseable set,
// never failing: an empty set yields a zero summary.
func numericSummary(values []tabular.Value) *tabular.NumericSummary {
	var nums []float64
	for _, v := range values {
		if v.Kind == tabular.KindNumber {
			nums = append(nums, v.Num)
		}
	}
	if len(nums) == 0 {
		return &tabular.NumericSummary{}
	}
	min, _ := stats.Min(nums)
	max, _ := stats.Max(nums)
	sum, _ := stats.Sum(nums)
	avg, _ := stats.Mean(nums)
	return &tabular.NumericSummary{
		Min:     min,
		Max:     max,
		Sum:     sum,
		Count:   len(nums),
		Average: avg,
	}
}

// temporalSummary sorts the parseable dates and derives the range and its
// granularity from the span. No valid dates yields a degenerate now/now
// month-grained summary instead of an error.
func (p *Profiler) temporalSummary(values []tabular.Value) *tabular.TemporalSummary {
	var times []time.Time
	for _, v := range values {
		if v.Kind == tabular.KindDate {
			times = append(times, v.Time)
		}
	}
	if len(times) == 0 {
		now := p.now()
		return &tabular.TemporalSummary{Start: now, End: now, Granularity: tabular.GranularityMonth}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	start := times[0]
	end := times[len(times)-1]
	return &tabular.TemporalSummary{
		Start:       start,
		End:         end,
		Granularity: granularityForSpan(end.Sub(start)),
	}
}

func granularityForSpan(span time.Duration) tabular.Granularity {
	days := span.Hours() / 24
	switch {
	case days > yearSpanDays:
		return tabular.GranularityYear
	case days > quarterSpanDays:
		return tabular.GranularityQuarter
	case days > monthSpanDays:
		return tabular.GranularityMonth
	case days > weekSpanDays:
		return tabular.GranularityWeek
	default:
		return tabular.GranularityDay
	}
}

// categoricalSummary counts frequency by canonical string form and keeps the
// top entries by descending count. The sort is stable so ties keep their
// first-encountered order.
func categoricalSummary(values []tabular.Value, cap int) *tabular.CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		key := v.Canonical()
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	entries := make([]tabular.ValueCount, 0, len(order))
	for _, key := range order {
		entries = append(entries, tabular.ValueCount{Value: key, Count: counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if len(entries) > cap {
		entries = entries[:cap]
	}
	return &tabular.CategoricalSummary{TopValues: entries}
}
