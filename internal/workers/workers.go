package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers runs a set of workers together.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add appends w to the set. It must be called before Run.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and blocks until all of them return. The first
// error cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}
