package handoff

// unit is the input type fed to a Generator once, by SourceOnGenerator,
// to drive it as a source.
type unit struct{}

// SourceOnGenerator adapts a Generator into a Source-like node whose
// single input is a unit value produced once by Activate. This is the
// degenerate-generator implementation of the source node kind mentioned
// as an available alternative; Source itself remains the primary
// implementation used elsewhere in this package.
type SourceOnGenerator[Out any] struct {
	gen *Generator[unit, Out]
}

// NewSourceOnGenerator returns a source-shaped wrapper around a generator
// body that ignores its (unit) input and produces the source's sequence
// of outputs as its lazy step.
func NewSourceOnGenerator[Out any](executor Executor, body func() Step[Out]) *SourceOnGenerator[Out] {
	return &SourceOnGenerator[Out]{
		gen: NewGenerator[unit, Out](executor, func(unit) Step[Out] { return body() }),
	}
}

// Activate feeds the single unit input, kicking off production.
func (s *SourceOnGenerator[Out]) Activate() {
	s.gen.TryPut(unit{}, nil)
}

func (s *SourceOnGenerator[Out]) TryGet(out *Out, r Receiver[Out]) bool {
	return s.gen.TryGet(out, r)
}

func (s *SourceOnGenerator[Out]) RegisterSuccessor(r Receiver[Out]) {
	s.gen.RegisterSuccessor(r)
}
