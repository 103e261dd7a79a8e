package clean

import (
	"errors"

	"awardeda/internal/table"
)

// ErrMissingColumn is returned when a column the pipeline depends on is absent.
// The input schema is fixed, so this is a configuration error, not bad data.
var ErrMissingColumn = errors.New("required column missing")

type StepResult struct {
	StepID       string `json:"step_id"`
	RowsIn       int    `json:"rows_in"`
	RowsOut      int    `json:"rows_out"`
	CellsChanged int    `json:"cells_changed,omitempty"`
}

// RowsDropped is the number of rows the step removed.
func (r StepResult) RowsDropped() int {
	return r.RowsIn - r.RowsOut
}

// Snapshot is the info()/isnull().sum() view of a table at one point in time.
type Snapshot struct {
	Rows    int                 `json:"rows"`
	Columns int                 `json:"columns"`
	Nulls   []table.ColumnNulls `json:"nulls"`
}

func Snap(t *table.Table) Snapshot {
	r, c := t.Shape()
	return Snapshot{Rows: r, Columns: c, Nulls: t.NullCounts()}
}

type Summary struct {
	Before Snapshot     `json:"before"`
	After  Snapshot     `json:"after"`
	Steps  []StepResult `json:"steps"`
}
