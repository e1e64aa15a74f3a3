// Package workpool bounds the number of conversions rendering concurrently.
// Compilation and rasterization are CPU-bound and can take seconds; without a
// bound a burst of requests would saturate every core and starve the HTTP
// listener.
package workpool

import (
	"runtime"
	"sync"
)

// Pool runs CPU-heavy work on its own goroutines, at most `workers` at a
// time. It holds no other state; concurrent submissions share nothing but
// the semaphore.
type Pool struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

// New creates a Pool with the given concurrency. Non-positive values default
// to the number of CPUs.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{sem: make(chan struct{}, workers)}
}

// Do submits f to the pool and blocks until it has run. Once a slot is
// acquired the work runs to completion; there is no cancellation.
func (p *Pool) Do(f func()) {
	p.sem <- struct{}{}
	done := make(chan struct{})
	p.wg.Add(1)
	go func() {
		defer func() {
			<-p.sem
			p.wg.Done()
			close(done)
		}()
		f()
	}()
	<-done
}

// Wait blocks until all in-flight work has finished. Used on shutdown so the
// process does not exit mid-render.
func (p *Pool) Wait() {
	p.wg.Wait()
}
