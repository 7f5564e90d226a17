// Package sim runs batches of independent battles concurrently.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlecore/internal/game/combat"
)

// Job is one battle to simulate.
type Job struct {
	Scenario string
	Setup    combat.Setup
	Stage    combat.Stage
}

// Report is a finished battle with its rewards, ready to persist.
type Report struct {
	ID         uuid.UUID
	Scenario   string
	Result     *combat.Result
	Experience int64
	Gold       int64
	CreatedAt  time.Time
}

// ReportStore persists battle reports.
type ReportStore interface {
	Create(ctx context.Context, report *Report) error
}

// Runner runs jobs on a bounded number of goroutines.
// Each battle owns its state exclusively; only the engine (read-only) is shared.
type Runner struct {
	engine  *combat.Engine
	workers int
	store   ReportStore
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore persists every report through store.
func WithStore(store ReportStore) RunnerOption {
	return func(r *Runner) { r.store = store }
}

// NewRunner creates a Runner. workers < 1 is treated as 1.
func NewRunner(engine *combat.Engine, workers int, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:  engine,
		workers: max(workers, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run simulates all jobs and returns reports in job order.
// The first failing job (fatal input, store error, cancelled context)
// cancels the remaining ones and its error is returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Report, error) {
	reports := make([]Report, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := r.engine.Run(job.Setup)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Scenario, err)
			}

			exp, gold := combat.Rewards(r.engine.Balance(), res, job.Stage)
			report := Report{
				ID:         uuid.New(),
				Scenario:   job.Scenario,
				Result:     res,
				Experience: exp,
				Gold:       gold,
				CreatedAt:  time.Now().UTC(),
			}

			if r.store != nil {
				if err := r.store.Create(ctx, &report); err != nil {
					return fmt.Errorf("storing report for job %d: %w", i, err)
				}
			}

			reports[i] = report
			slog.Debug("battle simulated",
				"job", i,
				"scenario", job.Scenario,
				"victor", res.Victor.String(),
				"turns", res.Turns,
				"seed", res.Seed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
