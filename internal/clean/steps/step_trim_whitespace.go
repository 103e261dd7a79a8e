package steps

import (
	"strings"

	"awardeda/internal/clean"
	"awardeda/internal/table"
)

type TrimWhitespaceStep struct{}

func (s *TrimWhitespaceStep) ID() string {
	return "trim-whitespace"
}

func (s *TrimWhitespaceStep) Title() string {
	return "Trim String Columns"
}

func (s *TrimWhitespaceStep) Description() string {
	return "Strips leading and trailing whitespace from every value of every string column. Numeric and boolean columns are not touched."
}

func (s *TrimWhitespaceStep) Rank() int { return 20 }

func (s *TrimWhitespaceStep) Apply(t *table.Table) (*table.Table, clean.StepResult, error) {
	out, changed := t.MapColumns(table.KindString, strings.TrimSpace)
	return out, clean.StepResult{StepID: s.ID(), RowsIn: t.Len(), RowsOut: out.Len(), CellsChanged: changed}, nil
}

func init() {
	clean.Register(&TrimWhitespaceStep{})
}
