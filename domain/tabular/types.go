package tabular

import (
	"fmt"
	"strings"
	"time"
)

// Row is one record of a rectangular dataset: column name to scalar cell.
// A missing key and an empty cell are both treated as "missing".
type Row map[string]interface{}

// InferredType classifies a column's dominant semantic type.
type InferredType string

const (
	TypeNumeric  InferredType = "numeric"
	TypeTemporal InferredType = "temporal"
	TypeTextual  InferredType = "textual"
)

// Granularity describes the temporal resolution of a date range's span.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// NumericSummary holds statistics over the parseable numeric values of a column.
type NumericSummary struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// TemporalSummary holds the observed date range of a column.
type TemporalSummary struct {
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

// ValueCount is one (value, frequency) entry of a categorical summary.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary holds the most frequent values of a column.
type CategoricalSummary struct {
	TopValues []ValueCount `json:"top_values"`
}

// Summary is a tagged union: exactly one member matches the inferred type.
type Summary struct {
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Temporal    *TemporalSummary    `json:"temporal,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// DistributionMarkers carry optional shape statistics for numeric columns.
type DistributionMarkers struct {
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
	Skewness     float64 `json:"skewness"`
	NormalPValue float64 `json:"normal_p_value"`
}

// ColumnProfile describes one column of an analyzed dataset.
type ColumnProfile struct {
	Name          string               `json:"name"`
	InferredType  InferredType         `json:"inferred_type"`
	TotalCount    int                  `json:"total_count"`
	MissingCount  int                  `json:"missing_count"`
	DistinctCount int                  `json:"distinct_count"`
	SampleValues  []interface{}        `json:"sample_values,omitempty"`
	Summary       Summary              `json:"summary"`
	Distribution  *DistributionMarkers `json:"distribution,omitempty"`
}

// ChartKind enumerates the visualization shapes the advisor can propose.
type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartBar   ChartKind = "bar"
	ChartArea  ChartKind = "area"
	ChartTable ChartKind = "table"
)

// ChartSuggestion is one proposed visualization over the profiled columns.
type ChartSuggestion struct {
	Kind      ChartKind `json:"kind"`
	Label     string    `json:"label"`
	XAxis     string    `json:"x_axis,omitempty"`
	YAxis     []string  `json:"y_axis"`
	Rationale string    `json:"rationale"`
}

// AnalysisResult is the immutable snapshot produced by one analysis call.
// Re-analysis produces a new result; this one is never mutated.
type AnalysisResult struct {
	RowCount         int               `json:"row_count"`
	Columns          []ColumnProfile   `json:"columns"`
	ChartSuggestions []ChartSuggestion `json:"chart_suggestions"`
	AnalyzedAt       time.Time         `json:"analyzed_at"`
}

// DeclaredType is an externally declared column type on the manual-schema path.
type DeclaredType string

const (
	DeclaredString  DeclaredType = "string"
	DeclaredNumber  DeclaredType = "number"
	DeclaredBoolean DeclaredType = "boolean"
	DeclaredDate    DeclaredType = "date"
)

// DeclaredColumn is one manually declared column definition.
type DeclaredColumn struct {
	Name string       `json:"name"`
	Type DeclaredType `json:"type"`
}

// InferredType maps the declared type onto the classifier's type set.
// Booleans fold into textual: there is no boolean summary kind.
func (c DeclaredColumn) InferredType() (InferredType, error) {
	switch DeclaredType(strings.ToLower(strings.TrimSpace(string(c.Type)))) {
	case DeclaredNumber:
		return TypeNumeric, nil
	case DeclaredDate:
		return TypeTemporal, nil
	case DeclaredString, DeclaredBoolean:
		return TypeTextual, nil
	}
	return "", fmt.Errorf("unknown declared type %q for column %q", c.Type, c.Name)
}

// ValidateDeclaredColumns rejects malformed manual schemas: duplicate names
// or empty/unknown types.
func ValidateDeclaredColumns(cols []DeclaredColumn) error {
	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return fmt.Errorf("declared column has empty name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate declared column %q", name)
		}
		seen[name] = true
		if strings.TrimSpace(string(col.Type)) == "" {
			return fmt.Errorf("declared column %q has empty type", name)
		}
		if _, err := col.InferredType(); err != nil {
			return err
		}
	}
	return nil
}
