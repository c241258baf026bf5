package app

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/adapters/excel"
	"tablero/domain/core"
	"tablero/domain/tabular"
	"tablero/internal"
	"tablero/internal/datacache"
	"tablero/internal/errors"
	"tablero/internal/testkit"
)

type rowReaderFunc func() ([]tabular.Row, error)

func (f rowReaderFunc) ReadRows() ([]tabular.Row, error) { return f() }

func newIngestionFixture() (*IngestionService, *testkit.MemoryStore, *datacache.Cache) {
	store := testkit.NewMemoryStore()
	cache := datacache.New(8, time.Minute)
	svc := NewIngestionService(store, cache, internal.NewDefaultLogger("ingest-test"))
	return svc, store, cache
}

func TestIngestCSVFile(t *testing.T) {
	svc, store, _ := newIngestionFixture()
	path := filepath.Join(t.TempDir(), "ventas.csv")
	require.NoError(t, os.WriteFile(path, []byte("fecha,monto\n2024-01-05,100\n2024-02-11,80\n"), 0o644))

	count, err := svc.Ingest(context.Background(), "ds-1", "Ventas 2024", excel.NewDataReader(path))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows := store.Datasets[core.DatasetID("ds-1")]
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0]["monto"])
	assert.Equal(t, "Ventas 2024", store.DatasetNames[core.DatasetID("ds-1")])
}

func TestIngestReplacesRowsAndDropsCache(t *testing.T) {
	svc, store, cache := newIngestionFixture()
	id := core.DatasetID("ds-1")
	stale := []tabular.Row{{"monto": "1"}}
	store.Datasets[id] = stale
	cache.Put(id, stale)

	fresh := []tabular.Row{{"monto": "2"}, {"monto": "3"}}
	count, err := svc.Ingest(context.Background(), id, "ventas", rowReaderFunc(func() ([]tabular.Row, error) {
		return fresh, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Len(t, store.Datasets[id], 2, "stored rows replaced")
	if _, ok := cache.Get(id); ok {
		t.Error("stale cached rows must be invalidated")
	}
}

func TestIngestRequiresDatasetID(t *testing.T) {
	svc, _, _ := newIngestionFixture()
	_, err := svc.Ingest(context.Background(), "", "x", rowReaderFunc(func() ([]tabular.Row, error) {
		return nil, nil
	}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidation, errors.GetCode(err))
}

func TestIngestReaderFailure(t *testing.T) {
	svc, store, _ := newIngestionFixture()
	_, err := svc.Ingest(context.Background(), "ds-1", "x", rowReaderFunc(func() ([]tabular.Row, error) {
		return nil, stderrors.New("corrupt sheet")
	}))
	require.Error(t, err)
	assert.Empty(t, store.Datasets, "nothing stored when reading fails")
}

func TestIngestStoreFailure(t *testing.T) {
	svc, store, cache := newIngestionFixture()
	store.ErrSaveRows = stderrors.New("connection reset")
	id := core.DatasetID("ds-1")
	cache.Put(id, []tabular.Row{{"monto": "1"}})

	_, err := svc.Ingest(context.Background(), id, "x", rowReaderFunc(func() ([]tabular.Row, error) {
		return []tabular.Row{{"monto": "2"}}, nil
	}))
	require.Error(t, err)
	if _, ok := cache.Get(id); !ok {
		t.Error("cache must stay intact when the store rejects the rows")
	}
}
