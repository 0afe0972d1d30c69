package handoff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orkestr8/handoff/inline"
)

func countingSource(ex Executor, values []int) *Source[int] {
	i := 0
	return NewSource[int](ex, func(out *int) bool {
		if i >= len(values) {
			return false
		}
		*out = values[i]
		i++
		return true
	})
}

// pump drains src by polling, letting the executor settle between pulls,
// and hands each value to next. This is the deterministic way to move
// several values through a chain built on register_successor's one-shot
// cache: rather than wire a persistent push edge that only ever fires
// once, the test drives each hop explicitly.
func pump(t *testing.T, ex Executor, src *Source[int], next func(int)) {
	t.Helper()
	for {
		var v int
		if !src.TryGet(&v, nil) {
			break
		}
		require.NoError(t, ex.WaitForAll())
		next(v)
	}
}

func TestScenarioPipeline(t *testing.T) {
	ex := inline.New()

	src := countingSource(ex, []int{1, 2, 3, 4, 5})
	src.Activate()
	require.NoError(t, ex.WaitForAll())

	sq := NewTransform[int, int](ex, func(v int) int { return v * v })
	q := NewQueue[int]()

	pump(t, ex, src, func(v int) {
		require.True(t, sq.TryPut(v, nil))
		require.NoError(t, ex.WaitForAll())

		var out int
		require.True(t, sq.TryGet(&out, nil))
		q.TryPut(out, nil)
	})

	var got []int
	for {
		var v int
		if !q.TryGet(&v, nil) {
			break
		}
		got = append(got, v)
	}

	require.Equal(t, []int{1, 4, 9, 16, 25}, got)
}

func TestScenarioFilter(t *testing.T) {
	f := NewFilter(even)
	sink := &recordingReceiver[int]{accept: true}

	for i := 1; i <= 10; i++ {
		f.RegisterSuccessor(sink)
		f.TryPut(i, nil)
	}

	require.Equal(t, []int{2, 4, 6, 8, 10}, sink.received)
}

func TestScenarioBroadcast(t *testing.T) {
	ex := inline.New()

	values := []string{"a", "b"}
	i := 0
	strSrc := NewSource[string](ex, func(out *string) bool {
		if i >= len(values) {
			return false
		}
		*out = values[i]
		i++
		return true
	})
	strSrc.Activate()
	require.NoError(t, ex.WaitForAll())

	b := NewBroadcast[string]()
	sinkA := &pullSink[string]{}
	sinkB := &pullSink[string]{}
	b.RegisterSuccessor(sinkA)
	b.RegisterSuccessor(sinkB)

	for {
		var v string
		if !strSrc.TryGet(&v, nil) {
			break
		}
		require.NoError(t, ex.WaitForAll())
		b.TryPut(v, nil)
	}

	require.Equal(t, []string{"a", "b"}, sinkA.received)
	require.Equal(t, []string{"a", "b"}, sinkB.received)
}

func TestScenarioLatch(t *testing.T) {
	ex := inline.New()

	src := countingSource(ex, []int{1, 2, 3})
	src.Activate()
	require.NoError(t, ex.WaitForAll())

	l := NewLatch[int]()
	pump(t, ex, src, func(v int) { l.TryPut(v, nil) })

	for i := 0; i < 3; i++ {
		var out int
		require.True(t, l.TryGet(&out, nil))
		require.Equal(t, 3, out)
	}
}

func TestScenarioGenerator(t *testing.T) {
	ex := inline.New()

	src := countingSource(ex, []int{2, 3})
	src.Activate()
	require.NoError(t, ex.WaitForAll())

	gen := NewGenerator[int, int](ex, rangeStep)
	var got []int

	pump(t, ex, src, func(in int) {
		require.True(t, gen.TryPut(in, nil))
		require.NoError(t, ex.WaitForAll())

		for {
			gen.mu.Lock()
			state := gen.state
			gen.mu.Unlock()
			if state != generatorFull {
				break
			}
			var out int
			require.True(t, gen.TryGet(&out, nil))
			got = append(got, out)
			require.NoError(t, ex.WaitForAll())
		}
	})

	require.Equal(t, []int{0, 1, 0, 1, 2}, got)
}

func TestScenarioQueueBackpressureNoLossOrderPerSource(t *testing.T) {
	ex := inline.New()

	q := NewQueue[int]()

	srcA := countingSource(ex, []int{1, 2, 3})
	srcB := countingSource(ex, []int{101, 102, 103})
	srcA.Activate()
	srcB.Activate()
	require.NoError(t, ex.WaitForAll())

	pump(t, ex, srcA, func(v int) { q.TryPut(v, nil) })
	pump(t, ex, srcB, func(v int) { q.TryPut(v, nil) })

	var got []int
	for i := 0; i < 6; i++ {
		var v int
		require.True(t, q.TryGet(&v, nil))
		got = append(got, v)
	}

	require.Len(t, got, 6)
	require.Contains(t, got, 1)
	require.Contains(t, got, 2)
	require.Contains(t, got, 3)
	require.Contains(t, got, 101)
	require.Contains(t, got, 102)
	require.Contains(t, got, 103)

	// order within each source is preserved in the overall interleaving
	aIdx := indicesOf(got, []int{1, 2, 3})
	require.True(t, isSorted(aIdx))
	bIdx := indicesOf(got, []int{101, 102, 103})
	require.True(t, isSorted(bIdx))
}

func indicesOf(haystack []int, needles []int) []int {
	idx := make([]int, 0, len(needles))
	for _, n := range needles {
		for i, v := range haystack {
			if v == n {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

func isSorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
