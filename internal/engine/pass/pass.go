// Package pass drives assembly stages over a resource pool.
package pass

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"go.trai.ch/relink/internal/core/domain"
	"go.trai.ch/relink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Stage is one transformation applied to a pool.
type Stage interface {
	// Name identifies the stage in telemetry and errors.
	Name() string
	// Start prepares a run of the stage over pool.
	Start(pool *domain.Pool) (Run, error)
}

// Run is the state of a stage for the duration of a single pass.
type Run interface {
	// Visit is called once per entry, possibly concurrently.
	// It reports whether the entry is kept in the output pool.
	Visit(entry domain.ResourceEntry) (bool, error)
	// Finish is called once, after every Visit has returned.
	// The returned entries are appended to the output pool.
	Finish() ([]domain.ResourceEntry, error)
}

// Runner executes stages in order, feeding each stage the output of the previous one.
type Runner struct {
	telemetry ports.Telemetry
}

// NewRunner creates a new Runner.
func NewRunner(telemetry ports.Telemetry) *Runner {
	return &Runner{telemetry: telemetry}
}

// Run applies every stage to pool and returns the resulting pool.
// A parallelism below one uses runtime.NumCPU().
func (r *Runner) Run(ctx context.Context, pool *domain.Pool, parallelism int, stages ...Stage) (*domain.Pool, error) {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	current := pool
	for _, stage := range stages {
		stageCtx, vertex := r.telemetry.Record(ctx, "stage "+stage.Name(), ports.WithGroup("pass"))

		next, err := r.runStage(stageCtx, current, parallelism, stage)
		if err != nil {
			vertex.Complete(err)
			return nil, zerr.With(err, "stage", stage.Name())
		}

		vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d entries in, %d entries out", len(current.Entries), len(next.Entries)))
		vertex.Complete(nil)
		current = next
	}

	return current, nil
}

func (r *Runner) runStage(ctx context.Context, pool *domain.Pool, parallelism int, stage Stage) (*domain.Pool, error) {
	run, err := stage.Start(pool)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, len(pool.Entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, entry := range pool.Entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			kept, err := run.Visit(entry)
			if err != nil {
				return zerr.With(err, "path", entry.Path)
			}
			keep[i] = kept
			return nil
		})
	}

	// Finish must not observe a partially visited pool.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	added, err := run.Finish()
	if err != nil {
		return nil, err
	}

	out := &domain.Pool{
		Modules: slices.Clone(pool.Modules),
		Entries: make([]domain.ResourceEntry, 0, len(pool.Entries)+len(added)),
	}
	for i, entry := range pool.Entries {
		if keep[i] {
			out.Entries = append(out.Entries, entry)
		}
	}
	out.Entries = append(out.Entries, added...)

	return out, nil
}
