package tabular

import (
	"testing"

	"tablero/domain/tabular"
)

func profileOf(name string, t tabular.InferredType) tabular.ColumnProfile {
	return tabular.ColumnProfile{Name: name, InferredType: t}
}

func TestSuggestChartsPairs(t *testing.T) {
	profiles := []tabular.ColumnProfile{
		profileOf("fecha", tabular.TypeTemporal),
		profileOf("monto", tabular.TypeNumeric),
		profileOf("region", tabular.TypeTextual),
	}
	got := SuggestCharts(profiles)
	if len(got) != 2 {
		t.Fatalf("suggestions = %d, want 2 (one line, one bar)", len(got))
	}
	if got[0].Kind != tabular.ChartLine || got[0].XAxis != "fecha" || got[0].YAxis[0] != "monto" {
		t.Errorf("line suggestion = %+v", got[0])
	}
	if got[0].Label != "monto por fecha" {
		t.Errorf("line label = %q", got[0].Label)
	}
	if got[1].Kind != tabular.ChartBar || got[1].XAxis != "region" || got[1].YAxis[0] != "monto" {
		t.Errorf("bar suggestion = %+v", got[1])
	}
}

func TestSuggestChartsAreaFallback(t *testing.T) {
	profiles := []tabular.ColumnProfile{
		profileOf("ancho", tabular.TypeNumeric),
		profileOf("alto", tabular.TypeNumeric),
	}
	got := SuggestCharts(profiles)
	if len(got) != 1 || got[0].Kind != tabular.ChartArea {
		t.Fatalf("suggestions = %+v, want single area chart", got)
	}
	if got[0].XAxis != "ancho" || got[0].YAxis[0] != "alto" {
		t.Errorf("area axes = %q vs %v", got[0].XAxis, got[0].YAxis)
	}
}

func TestSuggestChartsTableFallback(t *testing.T) {
	profiles := []tabular.ColumnProfile{
		profileOf("nota", tabular.TypeTextual),
	}
	got := SuggestCharts(profiles)
	if len(got) != 1 || got[0].Kind != tabular.ChartTable {
		t.Fatalf("suggestions = %+v, want single table", got)
	}
	if len(got[0].YAxis) != 1 || got[0].YAxis[0] != "nota" {
		t.Errorf("table y-axis = %v, want all column names", got[0].YAxis)
	}
}

func TestSuggestChartsNoColumns(t *testing.T) {
	got := SuggestCharts(nil)
	if len(got) != 1 || got[0].Kind != tabular.ChartTable {
		t.Fatalf("suggestions = %+v, want single table fallback", got)
	}
	if len(got[0].YAxis) != 0 {
		t.Errorf("empty dataset table y-axis = %v, want none", got[0].YAxis)
	}
}

func TestSuggestChartsCap(t *testing.T) {
	var profiles []tabular.ColumnProfile
	for _, n := range []string{"f1", "f2", "f3"} {
		profiles = append(profiles, profileOf(n, tabular.TypeTemporal))
	}
	for _, n := range []string{"m1", "m2", "m3", "m4"} {
		profiles = append(profiles, profileOf(n, tabular.TypeNumeric))
	}
	got := SuggestCharts(profiles)
	if len(got) != 10 {
		t.Fatalf("suggestions = %d, want cap of 10 (from 12 pairs)", len(got))
	}
	for i, s := range got {
		if s.Kind != tabular.ChartLine {
			t.Errorf("suggestion %d kind = %s, want line", i, s.Kind)
		}
	}
}
