package app

import (
	"context"

	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/datacache"
	"tablero/internal/errors"
	"tablero/ports"
)

// IngestionService loads external data files into stored datasets so they can
// be analyzed later by dataset id.
type IngestionService struct {
	datasets ports.DatasetRepository
	cache    *datacache.Cache
	logger   *internal.Logger
}

// NewIngestionService creates an ingestion service. The cache may be nil when
// no analysis cache shares the process.
func NewIngestionService(datasets ports.DatasetRepository, cache *datacache.Cache, logger *internal.Logger) *IngestionService {
	return &IngestionService{
		datasets: datasets,
		cache:    cache,
		logger:   logger,
	}
}

// Ingest reads every row from the reader and stores the set under the dataset
// id, replacing any earlier rows. A cached copy of the old rows is dropped so
// the next analysis sees the new data.
func (s *IngestionService) Ingest(ctx context.Context, id core.DatasetID, name string, reader ports.RowReader) (int, error) {
	if id == "" {
		return 0, errors.Validation("dataset id is required")
	}

	rows, err := reader.ReadRows()
	if err != nil {
		return 0, errors.Wrapf(err, "reading rows for dataset %s", id)
	}
	if err := s.datasets.SaveRows(ctx, id, name, rows); err != nil {
		return 0, errors.Wrapf(err, "storing rows for dataset %s", id)
	}
	if s.cache != nil {
		s.cache.Invalidate(id)
	}

	s.logger.Info("dataset %s (%s): %d rows ingested", id, name, len(rows))
	return len(rows), nil
}
