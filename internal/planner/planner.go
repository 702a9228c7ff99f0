package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"tilepath/internal/pathfinding"
)

// ErrStopped is reported for queries that could not run because the planner
// was stopped.
var ErrStopped = errors.New("planner stopped")

// Query is one path request of a batch.
type Query struct {
	ID     string
	Start  pathfinding.GridCoord
	Target pathfinding.GridCoord
}

// Outcome is the answer to one Query. Err is set when the search failed or
// never ran; a missing path is reported through Result, not Err.
type Outcome struct {
	Query   Query
	Result  pathfinding.Result
	Err     error
	Elapsed time.Duration
}

// Options configures a Planner.
type Options struct {
	Workers   int // <= 0: one per CPU
	QueueSize int // <= 0: twice the worker count
	Logger    *slog.Logger
}

// Planner answers batches of queries concurrently. Each job searches with its
// own clone of the template pathfinder, so the only state shared between
// jobs is the oracle and the recorder, both of which must be safe for
// concurrent reads.
type Planner struct {
	template  *pathfinding.Pathfinder
	pool      *workerPool
	logger    *slog.Logger
	completed atomic.Uint64
}

// NewPlanner starts the worker goroutines. The template is cloned, so later
// changes to it do not affect the planner.
func NewPlanner(template *pathfinding.Pathfinder, opts Options) *Planner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &Planner{
		template: template.Clone(),
		pool:     newWorkerPool(opts.Workers, opts.QueueSize),
		logger:   logger,
	}
	p.pool.start()
	return p
}

// Workers returns the number of worker goroutines.
func (p *Planner) Workers() int {
	return p.pool.numWorkers
}

// Completed counts the searches run since the planner started.
func (p *Planner) Completed() uint64 {
	return p.completed.Load()
}

// Plan answers every query and returns the outcomes in query order. Queries
// not started before ctx is cancelled or the planner is stopped carry the
// corresponding error; searches already running finish. The returned error
// is ctx.Err() when the batch was cut short by the context.
func (p *Planner) Plan(ctx context.Context, queries []Query) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))
	began := time.Now()

	var wg sync.WaitGroup
	for i, q := range queries {
		outcomes[i].Query = q
		out := &outcomes[i]
		wg.Add(1)
		job := func() {
			defer wg.Done()
			p.run(ctx, out)
		}
		if !p.pool.submit(ctx, job) {
			wg.Done()
			out.Err = p.skipReason(ctx)
		}
	}
	wg.Wait()

	found, failed := 0, 0
	for i := range outcomes {
		switch {
		case outcomes[i].Err != nil:
			failed++
		case outcomes[i].Result.Found:
			found++
		}
	}
	p.logger.Info("batch planned", "queries", len(queries), "found", found,
		"failed", failed, "workers", p.Workers(), "elapsed", time.Since(began))

	if err := ctx.Err(); err != nil {
		return outcomes, fmt.Errorf("plan interrupted: %w", err)
	}
	return outcomes, nil
}

func (p *Planner) run(ctx context.Context, out *Outcome) {
	if ctx.Err() != nil || p.pool.stopped() {
		out.Err = p.skipReason(ctx)
		return
	}
	pf := p.template.Clone()
	began := time.Now()
	out.Result, out.Err = pf.SearchTiles(out.Query.Start, out.Query.Target)
	out.Elapsed = time.Since(began)
	p.completed.Add(1)
	if out.Err != nil {
		p.logger.Warn("query failed", "id", out.Query.ID, "error", out.Err)
	}
}

func (p *Planner) skipReason(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStopped
}

// Stop refuses new queries, waits for queued ones to be settled and stops
// the workers. It is safe to call more than once.
func (p *Planner) Stop() {
	p.pool.stop()
}
