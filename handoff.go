// Package handoff implements a reactive dataflow runtime: a directed graph
// of nodes connected by a pull/push handshake protocol. Values move across
// an edge via TryPut/TryGet without unbounded buffering and without loss;
// a refused attempt caches the requester so a later successful transfer on
// the opposite side wakes it.
package handoff

// Receiver accepts values of type T pushed to it by a Sender.
type Receiver[T any] interface {
	// TryPut attempts to hand v to this receiver. Returns true if the
	// receiver has taken ownership of v. Returns false if declined; if src
	// is non-nil, the receiver has cached src and will call src.TryGet
	// exactly once when it later becomes ready.
	TryPut(v T, src Sender[T]) bool
}

// Sender yields values of type T pulled from it by a Receiver.
type Sender[T any] interface {
	// TryGet attempts to pull a value into *out. Returns true if *out was
	// populated. Returns false if none is available; if dst is non-nil,
	// the sender has cached dst and will call dst.TryPut exactly once when
	// a value later materializes. Broadcast and Latch instead add dst to
	// their persistent successor list, so it receives every later push.
	TryGet(out *T, dst Receiver[T]) bool

	// RegisterSuccessor attaches r as a downstream target. Nodes backed by
	// the one-shot successor cache (Source, Queue, Filter, Transform,
	// Generator) treat this as a single delivery slot: r is consulted for
	// at most one push, whether or not it accepts, and then the
	// registration is gone. Broadcast and Latch keep a persistent list
	// instead, so a registered r keeps receiving every value pushed
	// through.
	RegisterSuccessor(r Receiver[T])
}

// MakeEdge wires a directed binding from s to r. Whether r keeps receiving
// values after the first depends on s's own successor bookkeeping (see
// RegisterSuccessor); callers that need every value from a one-shot sender
// re-register or poll instead.
func MakeEdge[T any](s Sender[T], r Receiver[T]) {
	s.RegisterSuccessor(r)
}

// Executor is the external task-spawning facility every stateful node runs
// its work on. Implementations live outside this package (see pool and
// inline); the protocol itself only depends on this interface.
type Executor interface {
	// Run enqueues thunk for asynchronous execution and returns immediately.
	Run(thunk func())

	// WaitForAll blocks until every submitted task and every cooperative
	// waiter registered via IncrementWaitCount has completed. It returns
	// the first error surfaced by any task body, if any.
	WaitForAll() error

	// IncrementWaitCount marks the presence of a cooperative waiter, so
	// that WaitForAll does not consider the executor quiescent while the
	// waiter is registered.
	IncrementWaitCount()

	// DecrementWaitCount unmarks a cooperative waiter previously registered
	// via IncrementWaitCount.
	DecrementWaitCount()
}
