package handoff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()

	for i := 1; i <= 5; i++ {
		require.True(t, q.TryPut(i, nil))
	}

	for i := 1; i <= 5; i++ {
		var out int
		require.True(t, q.TryGet(&out, nil))
		require.Equal(t, i, out)
	}
}

func TestQueueFastPathBypassesFIFO(t *testing.T) {
	q := NewQueue[int]()

	waiter := &recordingReceiver[int]{accept: true}
	var out int
	require.False(t, q.TryGet(&out, waiter))

	require.True(t, q.TryPut(42, nil))
	require.Empty(t, q.fifo)
	require.Equal(t, []int{42}, waiter.received)
}

func TestQueueExclusiveStates(t *testing.T) {
	q := NewQueue[int]()

	require.True(t, q.TryPut(1, nil))
	require.NotEmpty(t, q.fifo)
	require.Empty(t, q.successors.items)

	var out int
	require.True(t, q.TryGet(&out, nil))
	require.Empty(t, q.fifo)

	require.False(t, q.TryGet(&out, &recordingReceiver[int]{accept: true}))
	require.Empty(t, q.fifo)
	require.NotEmpty(t, q.successors.items)
}
