package planner

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// workerPool manages a fixed set of goroutines draining a job queue. Every
// job accepted by submit runs exactly once, even when the pool is stopped
// while it is still queued.
type workerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	stopping atomic.Bool // readable by running jobs without the lock
}

// newWorkerPool creates a pool; numWorkers <= 0 means one worker per CPU and
// queueSize <= 0 means twice the worker count.
func newWorkerPool(numWorkers, queueSize int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = numWorkers * 2 // Buffer for better throughput
	}
	return &workerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), queueSize),
	}
}

// start launches the worker goroutines.
func (wp *workerPool) start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		job()
	}
}

// submit queues a job. It reports false when the pool is stopped or ctx is
// cancelled before the job could be queued.
func (wp *workerPool) submit(ctx context.Context, job func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return false
	}
	select {
	case wp.jobQueue <- job:
		return true
	case <-ctx.Done():
		return false
	}
}

// stop refuses new jobs, lets the workers finish the queue and waits for them.
func (wp *workerPool) stop() {
	wp.stopping.Store(true)
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.jobQueue)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}

// stopped reports whether stop has been called. Jobs use it to skip work.
func (wp *workerPool) stopped() bool {
	return wp.stopping.Load()
}
