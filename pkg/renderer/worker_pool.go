package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs batches of independent tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// Run calls task for every index in [0, n) and waits for all of them. At most
// GetNumWorkers tasks run at once. The first error returned by a task is
// returned after every task has finished.
func (wp *WorkerPool) Run(n int, task func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(wp.numWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return task(i)
		})
	}
	return g.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
