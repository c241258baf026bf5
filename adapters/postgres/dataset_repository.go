package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tablero/domain/core"
	"tablero/domain/tabular"
	"tablero/ports"
)

// datasetRepository implements ports.DatasetRepository. Row sets are stored
// as a JSON document per dataset; the analysis snapshot is persisted
// verbatim next to it.
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

func (r *datasetRepository) SaveRows(ctx context.Context, id core.DatasetID, name string, rows []tabular.Row) error {
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling rows for dataset %s: %w", id, err)
	}

	query := `INSERT INTO datasets (id, name, rows, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, rows = EXCLUDED.rows`
	if _, err := r.db.ExecContext(ctx, query, id, name, rowsJSON, time.Now()); err != nil {
		return classify(err, "saving dataset rows")
	}
	return nil
}

func (r *datasetRepository) GetRows(ctx context.Context, id core.DatasetID) ([]tabular.Row, error) {
	query := `SELECT rows FROM datasets WHERE id = $1`

	var rowsJSON []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&rowsJSON); err != nil {
		return nil, classify(err, "loading dataset rows")
	}

	var rows []tabular.Row
	if len(rowsJSON) > 0 {
		if err := json.Unmarshal(rowsJSON, &rows); err != nil {
			return nil, fmt.Errorf("unmarshaling dataset %s rows: %w", id, err)
		}
	}
	return rows, nil
}

func (r *datasetRepository) SaveAnalysis(ctx context.Context, id core.DatasetID, result *tabular.AnalysisResult) error {
	analysisJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling analysis for dataset %s: %w", id, err)
	}

	query := `UPDATE datasets SET analysis = $2, analyzed_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, analysisJSON, time.Now())
	if err != nil {
		return classify(err, "saving dataset analysis")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("saving dataset analysis: %w", core.ErrDatasetNotFound)
	}
	return nil
}
