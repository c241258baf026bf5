package tabular

import (
	"fmt"

	"tablero/domain/tabular"
)

// maxSuggestions caps the advisor output.
const maxSuggestions = 10

// SuggestCharts proposes visualizations from a set of column profiles. It is
// a pure function: line charts per (temporal, numeric) pair, bar charts per
// (textual, numeric) pair, an area comparison of the first two numeric
// columns when no pairs exist, and a table fallback otherwise. The final
// list keeps insertion order and is truncated to ten entries.
func SuggestCharts(profiles []tabular.ColumnProfile) []tabular.ChartSuggestion {
	var numeric, temporal, textual []string
	allNames := make([]string, 0, len(profiles))
	for _, p := range profiles {
		allNames = append(allNames, p.Name)
		switch p.InferredType {
		case tabular.TypeNumeric:
			numeric = append(numeric, p.Name)
		case tabular.TypeTemporal:
			temporal = append(temporal, p.Name)
		default:
			textual = append(textual, p.Name)
		}
	}

	var suggestions []tabular.ChartSuggestion
	for _, t := range temporal {
		for _, n := range numeric {
			suggestions = append(suggestions, tabular.ChartSuggestion{
				Kind:      tabular.ChartLine,
				Label:     fmt.Sprintf("%s por %s", n, t),
				XAxis:     t,
				YAxis:     []string{n},
				Rationale: fmt.Sprintf("Evolución de %s a lo largo de %s", n, t),
			})
		}
	}
	for _, c := range textual {
		for _, n := range numeric {
			suggestions = append(suggestions, tabular.ChartSuggestion{
				Kind:      tabular.ChartBar,
				Label:     fmt.Sprintf("%s por %s", n, c),
				XAxis:     c,
				YAxis:     []string{n},
				Rationale: fmt.Sprintf("Comparación de %s entre valores de %s", n, c),
			})
		}
	}
	if len(suggestions) == 0 && len(numeric) >= 2 {
		suggestions = append(suggestions, tabular.ChartSuggestion{
			Kind:      tabular.ChartArea,
			Label:     fmt.Sprintf("%s vs %s", numeric[0], numeric[1]),
			XAxis:     numeric[0],
			YAxis:     []string{numeric[1]},
			Rationale: "Comparación de las dos primeras columnas numéricas",
		})
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, tabular.ChartSuggestion{
			Kind:      tabular.ChartTable,
			Label:     "Vista de tabla",
			YAxis:     allNames,
			Rationale: "Sin pares numéricos, temporales o categóricos para graficar",
		})
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
