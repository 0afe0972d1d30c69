// Package graph provides an optional, diagnostics-only view of a handshake
// graph. It never participates in the try_put/try_get protocol; callers may
// mirror their MakeEdge calls into a Recorder purely to get topological
// ordering, cycle reports, and DOT export for free.
package graph

import (
	"fmt"
	"io"
	"sync"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Ref identifies a node for recording purposes. Callers typically pass the
// concrete Sender/Receiver value itself; any comparable value works.
type Ref interface{}

type vertex struct {
	ref   Ref
	id    int64
	label string
}

func (v *vertex) ID() int64      { return v.id }
func (v *vertex) DOTID() string  { return v.label }

type recordedEdge struct {
	from, to *vertex
	label    string
}

func (e *recordedEdge) From() gonum.Node     { return e.from }
func (e *recordedEdge) To() gonum.Node       { return e.to }
func (e *recordedEdge) ReversedEdge() gonum.Edge {
	return &recordedEdge{from: e.to, to: e.from, label: e.label}
}

// Recorder mirrors edges recorded from a live handshake graph into a
// gonum directed graph for introspection. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	g        *simple.DirectedGraph
	vertices map[Ref]*vertex
	seq      int64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		g:        simple.NewDirectedGraph(),
		vertices: map[Ref]*vertex{},
	}
}

func (r *Recorder) vertexFor(ref Ref) *vertex {
	if v, has := r.vertices[ref]; has {
		return v
	}
	v := &vertex{ref: ref, id: r.seq, label: fmt.Sprintf("%v", ref)}
	r.seq++
	r.vertices[ref] = v
	r.g.AddNode(v)
	return v
}

// Label overrides the display label used for ref in WriteDOT output.
func (r *Recorder) Label(ref Ref, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertexFor(ref).label = label
}

// Track records that MakeEdge(from, to) was called, with an optional edge
// label (e.g. the node kind, or an argument index).
func (r *Recorder) Track(from, to Ref, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fv := r.vertexFor(from)
	tv := r.vertexFor(to)
	r.g.SetEdge(&recordedEdge{from: fv, to: tv, label: label})
}

// TopologicalOrder returns nodes in a valid topological order, or an error
// naming the cycle if the recorded graph is not a DAG.
func (r *Recorder) TopologicalOrder() ([]Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted, err := topo.Sort(r.g)
	if err != nil {
		return nil, err
	}
	out := make([]Ref, 0, len(sorted))
	for _, n := range sorted {
		out = append(out, n.(*vertex).ref)
	}
	return out, nil
}

// HasCycle reports whether the recorded graph contains any directed cycle.
func (r *Recorder) HasCycle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(topo.DirectedCyclesIn(r.g)) > 0
}

type attrs map[string]string

func (a attrs) Attributes() []encoding.Attribute {
	out := make([]encoding.Attribute, 0, len(a))
	for k, v := range a {
		out = append(out, encoding.Attribute{Key: k, Value: v})
	}
	return out
}

type dotView struct {
	gonum.Directed
}

func (d dotView) DOTID() string { return "handoff" }

func (d dotView) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attrs{}, attrs{"shape": "box"}, attrs{}
}

// WriteDOT renders the recorded graph as Graphviz DOT for visualization.
func (r *Recorder) WriteDOT(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := dot.Marshal(dotView{Directed: r.g}, "", "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
