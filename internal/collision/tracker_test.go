package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsfile/errs"
)

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track(1, "s1"))
	require.NoError(t, tracker.Track(2, "s2"))
	require.Equal(t, 2, tracker.Count())
}

func TestTracker_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track(1, "s1"))
	require.ErrorIs(t, tracker.Track(1, "s1"), errs.ErrDuplicateIdentifier)
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track(1, "s1"))
	require.ErrorIs(t, tracker.Track(1, "s2"), errs.ErrHashCollision)
	require.Equal(t, 1, tracker.Count())
}
