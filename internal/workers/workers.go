package workers

import (
	"context"
	"sync"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run launches every worker on its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(wk Worker) {
			defer w.wg.Done()
			wk.Run(ctx)
		}(worker)
	}
}

// Wait blocks until every worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
