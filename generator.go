package handoff

import "sync"

// Step is a lazy sequence's continuation: called repeatedly, it populates
// *out and returns true until exhausted, then returns false. Step is
// called only from inside a Generator's worker, and only one worker runs
// at a time.
type Step[Out any] func(out *Out) bool

// GeneratorBody turns one input into a Step that yields that input's
// outputs. This is the body-factory design chosen for the multi-output
// generator node in place of the coroutine form: no stack-swapping
// runtime is required, matching the runtime's exclusion of any particular
// coroutine implementation from its scope.
type GeneratorBody[In, Out any] func(In) Step[Out]

type generatorState int

const (
	generatorIdle generatorState = iota
	generatorActive
	generatorFull
)

// Generator produces many outputs per input. Exactly one worker is ever
// in flight; step is bound and unbound only under the node lock, and is
// called only from inside that worker (without the lock held). Outputs from a single input are delivered in
// the order step produces them; because the node runs one worker at a
// time, outputs across inputs are delivered in input order too.
type Generator[In, Out any] struct {
	mu           sync.Mutex
	executor     Executor
	generate     GeneratorBody[In, Out]
	state        generatorState
	step         Step[Out]
	successors   successorCache[Out]
	predecessors predecessorCache[In]
	pending      *Out
}

// NewGenerator returns an idle generator driven by generate.
func NewGenerator[In, Out any](executor Executor, generate GeneratorBody[In, Out]) *Generator[In, Out] {
	g := &Generator[In, Out]{executor: executor, generate: generate}
	g.successors.setOwner(g)
	g.predecessors.setOwner(g)
	return g
}

func (g *Generator[In, Out]) TryPut(v In, src Sender[In]) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != generatorIdle {
		g.predecessors.add(src)
		return false
	}
	g.step = g.generate(v)
	g.state = generatorActive
	g.runWorker()
	return true
}

func (g *Generator[In, Out]) TryGet(out *Out, r Receiver[Out]) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != generatorFull {
		g.successors.add(r)
		return false
	}
	*out = *g.pending
	g.pending = nil
	// The bound step has not been exhausted (only an exhausted step
	// unbinds itself, see runWorker) so resuming means continuing to
	// pull from it, not fetching a new input.
	g.state = generatorActive
	g.runWorker()
	return true
}

func (g *Generator[In, Out]) RegisterSuccessor(r Receiver[Out]) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.successors.add(r)
}

// runWorker enqueues one unit of generator work: either advance the bound
// step, or, if none is bound, pull the next input and bind a fresh one.
// Called with mu held; the enqueue is non-blocking.
func (g *Generator[In, Out]) runWorker() {
	g.executor.Run(func() {
		g.mu.Lock()
		step := g.step
		g.mu.Unlock()

		if step == nil {
			g.getAndSpawn()
			return
		}

		var out Out
		ok := step(&out)

		g.mu.Lock()
		defer g.mu.Unlock()

		if !ok {
			g.step = nil
			g.getAndSpawnLocked()
			return
		}
		if g.successors.tryPut(out) {
			g.state = generatorActive
			g.runWorker()
		} else {
			g.state = generatorFull
			o := out
			g.pending = &o
		}
	})
}

func (g *Generator[In, Out]) getAndSpawn() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.getAndSpawnLocked()
}

// getAndSpawnLocked pulls the next input from the predecessor cache and
// binds a fresh step on success, else drops to idle. Must be called with
// mu held.
func (g *Generator[In, Out]) getAndSpawnLocked() {
	var in In
	if g.predecessors.tryGet(&in) {
		g.step = g.generate(in)
		g.state = generatorActive
		g.runWorker()
	} else {
		g.state = generatorIdle
	}
}
