package tabular

import (
	"tablero/domain/tabular"
)

// Classification thresholds. Observable behavior downstream dashboards rely
// on; do not tune without coordinating a recalibration.
const (
	numericThreshold  = 0.8
	temporalThreshold = 0.6
)

// ClassifyValues infers the semantic type of a column from its resolved
// values. Missing values are ignored; a column with no present values is
// textual. Numeric is checked before temporal, so a column of 4-digit years
// classifies as numeric. This is a heuristic, not a guarantee.
func ClassifyValues(values []tabular.Value) tabular.InferredType {
	present := 0
	numeric := 0
	temporal := 0
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		present++
		switch v.Kind {
		case tabular.KindNumber:
			numeric++
		case tabular.KindDate:
			temporal++
		}
	}
	if present == 0 {
		return tabular.TypeTextual
	}
	if float64(numeric)/float64(present) > numericThreshold {
		return tabular.TypeNumeric
	}
	if float64(temporal)/float64(present) > temporalThreshold {
		return tabular.TypeTemporal
	}
	return tabular.TypeTextual
}
