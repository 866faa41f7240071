package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/scope"
)

func TestBeginEndScopeOrder(t *testing.T) {
	s := scope.New()
	s.Begin()
	s.Track(0x1000)
	s.Track(0x2000)
	s.Track(0x3000)

	got, ok := s.End()
	require.True(t, ok)
	require.Equal(t, []uintptr{0x1000, 0x2000, 0x3000}, got)
}

func TestEndWithNoScopeOpen(t *testing.T) {
	s := scope.New()
	_, ok := s.End()
	require.False(t, ok)
}

func TestUntrackSwapWithBack(t *testing.T) {
	s := scope.New()
	s.Begin()
	s.Track(0x1000)
	s.Track(0x2000)
	s.Track(0x3000)

	require.True(t, s.Untrack(0x2000))
	require.False(t, s.Untrack(0x2000)) // already removed

	got, ok := s.End()
	require.True(t, ok)
	require.ElementsMatch(t, []uintptr{0x1000, 0x3000}, got)
}

func TestNestedScopes(t *testing.T) {
	s := scope.New()
	s.Begin()
	s.Track(0x1000)
	s.Begin()
	s.Track(0x2000)

	require.Equal(t, 2, s.Depth())

	inner, ok := s.End()
	require.True(t, ok)
	require.Equal(t, []uintptr{0x2000}, inner)

	outer, ok := s.End()
	require.True(t, ok)
	require.Equal(t, []uintptr{0x1000}, outer)
}

func TestTrackWithNoScopeOpenIsNoop(t *testing.T) {
	s := scope.New()
	s.Track(0x1000)
	require.Equal(t, 0, s.Depth())
	require.False(t, s.Untrack(0x1000))
}
