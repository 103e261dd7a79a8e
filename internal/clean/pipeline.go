package clean

import (
	"fmt"

	"awardeda/internal/table"
)

// Pipeline runs steps in order, each on the previous step's output.
type Pipeline struct {
	Steps []Step
}

// NewPipeline returns a pipeline over every registered step.
func NewPipeline() *Pipeline {
	return &Pipeline{Steps: List()}
}

func (p *Pipeline) Run(t *table.Table) (*table.Table, Summary, error) {
	if t == nil {
		return nil, Summary{}, fmt.Errorf("table is nil")
	}
	sum := Summary{Before: Snap(t)}
	cur := t
	for _, s := range p.Steps {
		next, res, err := s.Apply(cur)
		if err != nil {
			return nil, sum, fmt.Errorf("step %s: %w", s.ID(), err)
		}
		if res.StepID == "" {
			res.StepID = s.ID()
		}
		sum.Steps = append(sum.Steps, res)
		cur = next
	}
	sum.After = Snap(cur)
	return cur, sum, nil
}
