package postgres

import (
	_ "embed"

	"github.com/jmoiron/sqlx"

	"tablero/internal/errors"
)

//go:embed schema.sql
var schema string

// Migrate applies the idempotent schema to the connected database.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "applying database schema")
	}
	return nil
}
