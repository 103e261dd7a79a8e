package clean

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Step)
	mu       sync.RWMutex
)

func Register(s Step) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[s.ID()]; exists {
		panic(fmt.Sprintf("step %s already registered", s.ID()))
	}
	registry[s.ID()] = s
}

// List returns registered steps in pipeline order.
func List() []Step {
	mu.RLock()
	defer mu.RUnlock()
	var steps []Step
	for _, s := range registry {
		steps = append(steps, s)
	}
	sortSteps(steps)
	return steps
}

func Lookup(id string) (Step, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("step not found: %s", id)
	}
	return s, nil
}

func sortSteps(steps []Step) {
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Rank() != steps[j].Rank() {
			return steps[i].Rank() < steps[j].Rank()
		}
		return steps[i].ID() < steps[j].ID()
	})
}
