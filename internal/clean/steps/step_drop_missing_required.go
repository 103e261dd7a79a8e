package steps

import (
	"fmt"

	"awardeda/internal/clean"
	"awardeda/internal/table"
)

// RequiredColumns must hold a value on every cleaned row. The rule is specific
// to the award dataset and deliberately narrow: nulls elsewhere are kept.
var RequiredColumns = []string{"name", "film"}

type DropMissingRequiredStep struct{}

func (s *DropMissingRequiredStep) ID() string {
	return "drop-missing-required"
}

func (s *DropMissingRequiredStep) Title() string {
	return "Drop Rows Missing Name or Film"
}

func (s *DropMissingRequiredStep) Description() string {
	return "Removes rows whose name or film is null, empty or whitespace-only. Nulls in other columns are left as they are."
}

func (s *DropMissingRequiredStep) Rank() int { return 10 }

func (s *DropMissingRequiredStep) Apply(t *table.Table) (*table.Table, clean.StepResult, error) {
	idx := make([]int, 0, len(RequiredColumns))
	for _, name := range RequiredColumns {
		i, ok := t.ColumnIndex(name)
		if !ok {
			return nil, clean.StepResult{}, fmt.Errorf("%w: %q", clean.ErrMissingColumn, name)
		}
		idx = append(idx, i)
	}

	out := t.Filter(func(r table.Row) bool {
		for _, i := range idx {
			// Whitespace-only counts as empty: trimming runs after this step and
			// would otherwise leave an empty required value behind.
			if r[i].Empty() {
				return false
			}
		}
		return true
	})
	return out, clean.StepResult{StepID: s.ID(), RowsIn: t.Len(), RowsOut: out.Len()}, nil
}

func init() {
	clean.Register(&DropMissingRequiredStep{})
}
