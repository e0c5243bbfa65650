// Package workerpool provides the bounded goroutine pool that runs scan
// probes. The worker count is fixed and workers are reused across candidate
// batches, so a scan never holds more goroutines than the configured thread
// count no matter how many candidates a target expands into.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of worker goroutines. The zero value is not
// usable; use New.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// New creates a pool with the given number of workers, started immediately.
// A non-positive count falls back to a single worker.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit queues a task, blocking when all workers are busy and the queue is
// full. Returns false if the pool is closed.
func (p *Pool) Submit(task func()) bool {
	if p.closed.Load() {
		return false
	}
	p.tasks <- task
	return true
}

// ForEach runs fn for indexes 0..n-1 on the pool and blocks until every
// submitted call returns. Cancelling ctx stops new submissions; calls
// already running are left to finish.
func (p *Pool) ForEach(ctx context.Context, n int, fn func(i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		wg.Add(1)
		if !p.Submit(func() {
			defer wg.Done()
			fn(i)
		}) {
			wg.Done()
			break
		}
	}
	wg.Wait()
}

// Cap returns the worker count.
func (p *Pool) Cap() int { return p.workers }

// Close stops the pool after draining queued tasks. Safe to call more than
// once; Submit after Close returns false.
func (p *Pool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.tasks)
		p.wg.Wait()
	}
}
