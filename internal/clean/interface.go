package clean

import "awardeda/internal/table"

// Step is one ordered transformation of the cleaning pipeline.
type Step interface {
	ID() string
	Title() string
	Description() string

	// Rank orders steps within the pipeline; lower runs first.
	Rank() int

	// Apply returns a new table. It MUST NOT modify t.
	Apply(t *table.Table) (*table.Table, StepResult, error)
}
