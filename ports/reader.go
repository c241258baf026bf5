package ports

import "tablero/domain/tabular"

// RowReader loads an external data file into the rectangular row shape the
// analysis engine consumes.
type RowReader interface {
	ReadRows() ([]tabular.Row, error)
}
