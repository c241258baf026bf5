package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tablero/domain/core"
)

// pq error codes mapped onto the storage error taxonomy.
const (
	pqUndefinedTable  = "42P01"
	pqUndefinedColumn = "42703"
	pqInsufficientPrv = "42501"
)

// classify maps driver errors onto the domain's storage error classes so
// callers can distinguish schema drift from real failures.
func classify(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, core.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pqUndefinedTable || pqErr.Code == pqUndefinedColumn:
			return fmt.Errorf("%s: %w: %v", operation, core.ErrSchemaMismatch, err)
		case pqErr.Code == pqInsufficientPrv:
			return fmt.Errorf("%s: %w: %v", operation, core.ErrPermissionDenied, err)
		case pqErr.Code.Class() == "23":
			return fmt.Errorf("%s: %w: %v", operation, core.ErrConstraintViolation, err)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
