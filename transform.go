package handoff

import "sync"

// TransformBody maps one input to one output on an executor task.
type TransformBody[In, Out any] func(In) Out

type transformState int

const (
	transformIdle transformState = iota
	transformActive
	transformFull
)

// Transform applies a body function asynchronously, preserving per-input
// order since only one worker runs at a time. It cycles through idle,
// active, and full states:
//
//	idle   + TryPut  -> active (spawn worker), returns true
//	idle   + TryGet  -> idle (cache requester), returns false
//	active + TryPut  -> active (cache source), returns false
//	active + TryGet  -> active (cache requester), returns false
//	full   + TryPut  -> full (cache source), returns false
//	full   + TryGet  -> hand out pending, then spawn from the predecessor
//	                    cache if anything is waiting, else drop to idle
type Transform[In, Out any] struct {
	mu           sync.Mutex
	executor     Executor
	body         TransformBody[In, Out]
	state        transformState
	successors   successorCache[Out]
	predecessors predecessorCache[In]
	pending      *Out
}

// NewTransform returns an idle transform node applying body to each
// accepted input.
func NewTransform[In, Out any](executor Executor, body TransformBody[In, Out]) *Transform[In, Out] {
	t := &Transform[In, Out]{executor: executor, body: body}
	t.successors.setOwner(t)
	t.predecessors.setOwner(t)
	return t
}

func (t *Transform[In, Out]) TryPut(v In, src Sender[In]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != transformIdle {
		t.predecessors.add(src)
		return false
	}
	t.state = transformActive
	t.spawnWorker(v)
	return true
}

func (t *Transform[In, Out]) TryGet(out *Out, r Receiver[Out]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != transformFull {
		t.successors.add(r)
		return false
	}
	*out = *t.pending
	t.pending = nil
	t.spawnGetLocked()
	return true
}

func (t *Transform[In, Out]) RegisterSuccessor(r Receiver[Out]) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.successors.add(r)
}

// spawnGetLocked pulls from the predecessor cache and spawns a worker on
// the result, else drops to idle. Must be called with mu held.
func (t *Transform[In, Out]) spawnGetLocked() {
	var v In
	if t.predecessors.tryGet(&v) {
		t.state = transformActive
		t.spawnWorker(v)
	} else {
		t.state = transformIdle
	}
}

// spawnWorker enqueues the body call for v. Called with mu held; the
// enqueue itself is non-blocking so this never re-enters the lock.
func (t *Transform[In, Out]) spawnWorker(v In) {
	t.executor.Run(func() {
		out := t.body(v)

		t.mu.Lock()
		defer t.mu.Unlock()

		if t.successors.tryPut(out) {
			t.spawnGetLocked()
		} else {
			t.state = transformFull
			o := out
			t.pending = &o
		}
	})
}
