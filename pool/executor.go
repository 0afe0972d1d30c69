// Package pool provides the default handoff.Executor: a fixed-size worker
// pool gated by a weighted semaphore, in the style of the throttled node
// concurrency the teacher graph runtime built on
// golang.org/x/sync/semaphore.
package pool

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/orkestr8/handoff"
)

// Options configures an Executor.
type Options struct {
	// Workers bounds how many task bodies may run concurrently. Zero or
	// negative means unbounded.
	Workers int

	Logger handoff.Logger
}

// Executor is a handoff.Executor backed by a bounded worker pool. Tasks
// submitted via Run acquire a semaphore permit before running; WaitForAll
// submits a sentinel task that cooperatively blocks until no waiter
// remains registered, then joins every submitted task, matching the
// drain protocol described for the runtime's executor contract.
type Executor struct {
	logger handoff.Logger

	mu     sync.Mutex
	sem    *semaphore.Weighted
	weight int64

	wg sync.WaitGroup

	waitMu   sync.Mutex
	waitCond *sync.Cond
	waiters  int

	errOnce sync.Once
	err     error
}

// New returns an Executor bounded by opts.Workers concurrent task bodies.
func New(opts Options) *Executor {
	e := &Executor{logger: opts.Logger}
	if e.logger == nil {
		e.logger = handoff.NoLogging{}
	}
	if opts.Workers > 0 {
		e.weight = int64(opts.Workers)
		e.sem = semaphore.NewWeighted(e.weight)
	}
	e.waitCond = sync.NewCond(&e.waitMu)
	return e
}

func (e *Executor) currentSem() *semaphore.Weighted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sem
}

// Run enqueues thunk, acquiring a semaphore permit first if the pool is
// bounded. A panic inside thunk is captured as the executor's first
// surfaced error rather than crashing the process, matching the
// documented "body-raised failures propagate out of wait_for_all" model.
func (e *Executor) Run(thunk func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		if sem := e.currentSem(); sem != nil {
			if err := sem.Acquire(context.Background(), 1); err != nil {
				e.fail(err)
				return
			}
			defer sem.Release(1)
		}

		defer func() {
			if r := recover(); r != nil {
				e.fail(fmt.Errorf("task panicked: %v", r))
			}
		}()

		thunk()
	}()
}

func (e *Executor) fail(err error) {
	e.errOnce.Do(func() {
		e.err = err
		e.logger.Warn("task failed", "error", err)
	})
}

// WaitForAll blocks until every submitted task and every cooperative
// waiter has completed, then returns the first error any task surfaced.
func (e *Executor) WaitForAll() error {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		e.waitMu.Lock()
		for e.waiters > 0 {
			e.waitCond.Wait()
		}
		e.waitMu.Unlock()
	}()

	e.wg.Wait()
	return e.err
}

// IncrementWaitCount registers a cooperative waiter so that WaitForAll's
// drain sentinel does not fire while it is outstanding.
func (e *Executor) IncrementWaitCount() {
	e.waitMu.Lock()
	e.waiters++
	e.waitMu.Unlock()
}

// DecrementWaitCount unregisters a cooperative waiter previously
// registered with IncrementWaitCount.
func (e *Executor) DecrementWaitCount() {
	e.waitMu.Lock()
	e.waiters--
	e.waitCond.Broadcast()
	e.waitMu.Unlock()
}

// Oversubscribe permits the pool to run more concurrent tasks than its
// configured Workers for the returned scope, releasing the extra permits
// on Close. On an unbounded Executor (Workers <= 0) this is a no-op.
func (e *Executor) Oversubscribe(extra int) io.Closer {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sem == nil || extra <= 0 {
		return closerFunc(func() error { return nil })
	}

	priorSem, priorWeight := e.sem, e.weight
	// A semaphore.Weighted's capacity is fixed at construction, so
	// widening it for the scope means swapping in a fresh one sized for
	// the boost; tasks already holding a permit on the prior semaphore
	// are unaffected, and Run() picks up the new one going forward.
	e.weight = priorWeight + int64(extra)
	e.sem = semaphore.NewWeighted(e.weight)

	restored := false
	return closerFunc(func() error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !restored {
			e.sem, e.weight = priorSem, priorWeight
			restored = true
		}
		return nil
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
