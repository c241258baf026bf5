package ports

import (
	"context"

	"tablero/domain/core"
	"tablero/domain/tabular"
)

// DatasetRepository defines the row-store operations over stored datasets.
type DatasetRepository interface {
	// SaveRows creates the dataset or replaces its stored row set.
	SaveRows(ctx context.Context, id core.DatasetID, name string, rows []tabular.Row) error

	// GetRows loads the dataset's full row set.
	GetRows(ctx context.Context, id core.DatasetID) ([]tabular.Row, error)

	// SaveAnalysis persists the analysis snapshot verbatim alongside the
	// dataset.
	SaveAnalysis(ctx context.Context, id core.DatasetID, result *tabular.AnalysisResult) error
}
