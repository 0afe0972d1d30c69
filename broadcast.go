package handoff

import "sync"

// Broadcast fans one value out to every registered successor. Push
// delivery copies v to each successor via TryPut, ignoring the outcome.
// Pull-side TryGet never returns a value directly; it appends the
// requester to the same list and returns false. That list is never
// drained on a successful push: a poll-style receiver that calls TryGet
// stays registered and keeps receiving every subsequent broadcast value,
// the multi-shot behavior documented in DESIGN.md's resolution of the
// broadcast open question.
type Broadcast[T any] struct {
	mu         sync.Mutex
	successors []Receiver[T]
}

// NewBroadcast returns an empty broadcast node.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{}
}

func (b *Broadcast[T]) TryPut(v T, _ Sender[T]) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.successors {
		clone := v
		s.TryPut(clone, nil)
	}
	return true
}

func (b *Broadcast[T]) TryGet(_ *T, r Receiver[T]) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r != nil {
		b.successors = append(b.successors, r)
	}
	return false
}

func (b *Broadcast[T]) RegisterSuccessor(r Receiver[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successors = append(b.successors, r)
}
