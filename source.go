package handoff

import "sync"

// SourceBody produces the next value into *out, returning false to signal
// end-of-stream. Once it returns false, the source halts spawning further
// tasks but remains reachable (an already-cached successor still gets no
// further callback since none is coming).
type SourceBody[T any] func(out *T) bool

// Source drives a pipeline from a body function. At most one task is
// in-flight per source and at most one value is parked at a time; the
// output rate is demand-limited, since no new task is spawned while a
// value sits unclaimed.
type Source[T any] struct {
	mu         sync.Mutex
	executor   Executor
	body       SourceBody[T]
	successors successorCache[T]
	pending    *T
}

// NewSource returns a source that will drive body's values through
// executor once Activate is called.
func NewSource[T any](executor Executor, body SourceBody[T]) *Source[T] {
	s := &Source[T]{executor: executor, body: body}
	s.successors.setOwner(s)
	return s
}

// Activate kicks off the first task.
func (s *Source[T]) Activate() {
	s.spawnPut()
}

func (s *Source[T]) spawnPut() {
	s.executor.Run(func() {
		var v T
		if !s.body(&v) {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.successors.tryPut(v) {
			s.pending = &v
		} else {
			s.spawnPut()
		}
	})
}

func (s *Source[T]) TryGet(out *T, r Receiver[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		s.successors.add(r)
		return false
	}
	*out = *s.pending
	s.pending = nil
	s.spawnPut()
	return true
}

func (s *Source[T]) RegisterSuccessor(r Receiver[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.successors.add(r)
}
