package handoff

import "sync"

// Predicate reports whether a value should pass a Filter.
type Predicate[T any] func(T) bool

// Filter is a stateless synchronous sieve. A value that fails the
// predicate is dropped and TryPut still reports acceptance, since the
// value was consumed (just not forwarded). A value that passes is
// forwarded through the successor cache; if nothing accepts it, the
// source is cached as a predecessor for the next TryGet to pull from.
type Filter[T any] struct {
	mu           sync.Mutex
	pred         Predicate[T]
	successors   successorCache[T]
	predecessors predecessorCache[T]
}

// NewFilter returns a filter forwarding only values for which pred
// returns true.
func NewFilter[T any](pred Predicate[T]) *Filter[T] {
	f := &Filter[T]{pred: pred}
	f.successors.setOwner(f)
	f.predecessors.setOwner(f)
	return f
}

func (f *Filter[T]) TryPut(v T, src Sender[T]) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.pred(v) {
		return true
	}
	if f.successors.tryPut(v) {
		return true
	}
	f.predecessors.add(src)
	return false
}

func (f *Filter[T]) TryGet(out *T, r Receiver[T]) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	var candidate T
	for f.predecessors.tryGet(&candidate) {
		if f.pred(candidate) {
			*out = candidate
			return true
		}
	}
	f.successors.add(r)
	return false
}

func (f *Filter[T]) RegisterSuccessor(r Receiver[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.successors.add(r)
}
