package steps

import (
	"awardeda/internal/clean"
	"awardeda/internal/table"
)

type DropDuplicatesStep struct{}

func (s *DropDuplicatesStep) ID() string {
	return "drop-duplicates"
}

func (s *DropDuplicatesStep) Title() string {
	return "Drop Duplicate Rows"
}

func (s *DropDuplicatesStep) Description() string {
	return "Removes rows identical to an earlier row across all columns. The first occurrence is kept."
}

func (s *DropDuplicatesStep) Rank() int { return 30 }

func (s *DropDuplicatesStep) Apply(t *table.Table) (*table.Table, clean.StepResult, error) {
	out, _ := t.DedupeRows()
	return out, clean.StepResult{StepID: s.ID(), RowsIn: t.Len(), RowsOut: out.Len()}, nil
}

func init() {
	clean.Register(&DropDuplicatesStep{})
}
