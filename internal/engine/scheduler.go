package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job produces one artifact file.
type Job struct {
	Kind string
	Path string
	Run  func(ctx context.Context) error
}

type Scheduler struct {
	concurrency int
}

func NewScheduler(concurrency int) (*Scheduler, error) {
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{concurrency: concurrency}, nil
}

// Execute runs jobs with at most s.concurrency in flight and calls done once
// per job with its error (nil on success).
//
// Semantics:
//   - A failing job never stops the others; failures are reported through done.
//   - With concurrency 1, jobs run one at a time in slice order.
//   - Jobs not yet started when ctx is canceled are reported with ctx.Err().
//   - done may be called from several goroutines at once when concurrency > 1.
func (s *Scheduler) Execute(ctx context.Context, jobs []Job, done func(Job, error)) error {
	if ctx == nil {
		return errors.New("context is nil")
	}
	if s == nil {
		return errors.New("scheduler is nil")
	}
	if done == nil {
		done = func(Job, error) {}
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			done(job, err)
			continue
		}
		if job.Run == nil {
			done(job, fmt.Errorf("%s %s: no runner", job.Kind, job.Path))
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				done(job, err)
				return nil
			}
			done(job, job.Run(ctx))
			return nil
		})
	}
	return g.Wait()
}
