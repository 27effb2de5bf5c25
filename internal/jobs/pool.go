// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package jobs provides the worker pool that runs asynchronous asset
// loads off the requesting goroutine.
package jobs

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for background asset loading.
//
// The pool distributes jobs across multiple workers, each with their own
// queue. Workers can steal jobs from other workers when their own queue is
// empty, which balances load when some loads (large textures, shader
// compiles) are much slower than others.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds per-worker job queues. Each worker primarily pulls
	// from its own queue but can steal from others.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting jobs.
	running atomic.Bool
}

// NewPool creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for jobs.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffered queues hide submission latency without unbounded growth.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.queues[id]

	for {
		select {
		case <-p.done:
			// Drain remaining jobs before exiting so every queued
			// job still runs exactly once.
			p.drain(myQueue)
			return

		case job := <-myQueue:
			if job != nil {
				job()
			}

		default:
			// Try to steal a job from another worker.
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// No job available anywhere, block on own queue.
				select {
				case <-p.done:
					p.drain(myQueue)
					return
				case job := <-myQueue:
					if job != nil {
						job()
					}
				}
			}
		}
	}
}

// drain executes all remaining jobs in a queue.
func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal attempts to take a job from another worker's queue.
// Returns nil if no job is available.
func (p *Pool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
			// Queue is empty, try next.
		}
	}
	return nil
}

// Submit sends a single job to the pool and reports whether it was
// queued. The job goes to the worker with the shortest queue. A false
// return means the pool is closing and the caller must run the job
// itself if it has to run.
func (p *Pool) Submit(job func()) bool {
	if job == nil || !p.running.Load() {
		return false
	}

	// Find the worker with the shortest queue (simple load balancing).
	minLen := len(p.queues[0])
	minIdx := 0
	for i := 1; i < p.workers; i++ {
		qLen := len(p.queues[i])
		if qLen < minLen {
			minLen = qLen
			minIdx = i
		}
	}

	select {
	case p.queues[minIdx] <- job:
		return true
	case <-p.done:
		return false
	}
}

// Close gracefully shuts down the pool. It stops accepting new jobs,
// lets workers drain their queues, and waits for them to stop.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		// Already closed.
		return
	}

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting jobs.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
