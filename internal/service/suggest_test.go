package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClosestName(t *testing.T) {
	t.Parallel()

	names := []string{"groceries", "laundry", "write report"}

	got, ok := closestName(names, "grocries")
	require.True(t, ok)
	require.Equal(t, "groceries", got)

	// Case differences don't count against the match.
	got, ok = closestName(names, "Laundry")
	require.True(t, ok)
	require.Equal(t, "laundry", got)

	_, ok = closestName(names, "completely unrelated")
	require.False(t, ok)

	_, ok = closestName(nil, "anything")
	require.False(t, ok)
}

func TestTaskKeyID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alice.task_a", TaskKey{Owner: "alice", Name: "task_a"}.ID())
}
