package app

import (
	"context"
	"sort"
	"time"

	adapter "tablero/adapters/tabular"
	"tablero/domain/core"
	"tablero/domain/tabular"
	"tablero/internal"
	"tablero/internal/datacache"
	"tablero/internal/errors"
	"tablero/ports"
)

// AnalysisService orchestrates column profiling and chart advice over a
// rectangular row set. Each call operates on its own input snapshot; the
// produced AnalysisResult is never mutated afterwards.
type AnalysisService struct {
	profiler *adapter.Profiler
	datasets ports.DatasetRepository
	cache    *datacache.Cache
	logger   *internal.Logger
	now      func() time.Time
}

// NewAnalysisService creates an analysis service. The dataset repository and
// cache may be nil when only direct row analysis is needed.
func NewAnalysisService(datasets ports.DatasetRepository, cache *datacache.Cache, logger *internal.Logger) *AnalysisService {
	return &AnalysisService{
		profiler: adapter.NewProfiler(),
		datasets: datasets,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze profiles the rows and proposes charts. When declared is non-empty
// exactly those columns are profiled under their declared types; columns
// present in rows but not declared are ignored, and a declared column absent
// from a row counts as missing for that row. Otherwise columns are inferred
// from the first row's key set.
func (s *AnalysisService) Analyze(rows []tabular.Row, declared []tabular.DeclaredColumn) (*tabular.AnalysisResult, error) {
	var profiles []tabular.ColumnProfile
	if len(declared) > 0 {
		if err := tabular.ValidateDeclaredColumns(declared); err != nil {
			return nil, errors.WithCode(errors.CodeValidation, err)
		}
		profiles = make([]tabular.ColumnProfile, 0, len(declared))
		for _, col := range declared {
			profile, err := s.profiler.ProfileDeclared(col, rows)
			if err != nil {
				return nil, errors.WithCode(errors.CodeValidation, err)
			}
			profiles = append(profiles, profile)
		}
	} else {
		for _, name := range columnNames(rows) {
			profiles = append(profiles, s.profiler.Profile(name, rows))
		}
	}

	return &tabular.AnalysisResult{
		RowCount:         len(rows),
		Columns:          profiles,
		ChartSuggestions: adapter.SuggestCharts(profiles),
		AnalyzedAt:       s.now(),
	}, nil
}

// AnalyzeDataset loads a stored dataset's rows (through the bounded cache),
// analyzes them and persists the snapshot alongside the dataset.
func (s *AnalysisService) AnalyzeDataset(ctx context.Context, id core.DatasetID, declared []tabular.DeclaredColumn) (*tabular.AnalysisResult, error) {
	if id == "" {
		return nil, errors.Validation("dataset id is required")
	}

	rows, cached := s.cachedRows(id)
	if !cached {
		var err error
		rows, err = s.datasets.GetRows(ctx, id)
		if err != nil {
			if core.IsSchemaMismatch(err) {
				// Forward-compat: a missing column/table degrades to an
				// empty dataset instead of failing the analysis.
				s.logger.Warn("dataset %s: schema mismatch reading rows, analyzing empty set: %v", id, err)
				rows = nil
			} else if core.IsNotFound(err) {
				return nil, errors.WithCode(errors.CodeNotFound, err)
			} else {
				return nil, errors.Wrapf(err, "loading rows for dataset %s", id)
			}
		} else if s.cache != nil {
			s.cache.Put(id, rows)
		}
	}

	result, err := s.Analyze(rows, declared)
	if err != nil {
		return nil, err
	}
	if err := s.datasets.SaveAnalysis(ctx, id, result); err != nil {
		// The dataset can vanish between the read and the save.
		if core.IsNotFound(err) {
			return nil, errors.WithCode(errors.CodeNotFound, err)
		}
		return nil, errors.Wrapf(err, "persisting analysis for dataset %s", id)
	}
	return result, nil
}

func (s *AnalysisService) cachedRows(id core.DatasetID) ([]tabular.Row, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(id)
}

// columnNames derives the column set from the first row. Map iteration is
// unordered, so names are sorted for a deterministic profile order.
func columnNames(rows []tabular.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	names := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
