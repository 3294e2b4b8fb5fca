package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubsetRefCountLaw(t *testing.T) {
	backing := mustReal(t, make([]byte, 10), 10, 10)
	require.EqualValues(t, 1, backing.usageCount.Load())

	s, err := NewSubset(backing, 0, 5, -1)
	require.NoError(t, err)
	require.EqualValues(t, 2, backing.usageCount.Load(), "NewSubset must increment the backing's usage count by 1")

	Free(s)
	require.EqualValues(t, 1, backing.usageCount.Load(), "Free(subset) must decrement the backing's usage count by 1")
}

func TestFreeReleasesRealBufferAtZero(t *testing.T) {
	released := false
	b, err := NewReal([]byte{1, 2, 3}, 3, 3, func([]byte) { released = true })
	require.NoError(t, err)

	Free(b)
	require.True(t, released)
}

func TestFreeChainReleasesEachBufferExactlyOnce(t *testing.T) {
	// Boundary scenario #8: compose(A, B), FreeChain(C) releases C, A,
	// and B exactly once each.
	var releasedA, releasedB int
	a, err := NewReal([]byte{1, 2}, 2, 2, func([]byte) { releasedA++ })
	require.NoError(t, err)
	b, err := NewReal([]byte{3, 4}, 2, 2, func([]byte) { releasedB++ })
	require.NoError(t, err)

	comp := NewComposite()
	comp.Append(a)
	comp.Append(b)
	require.NoError(t, comp.Finalize())

	FreeChain(comp)

	require.Equal(t, 1, releasedA)
	require.Equal(t, 1, releasedB)
}

func TestFreeChainWalksSubsetsBuiltOnAParent(t *testing.T) {
	var released int
	parent, err := NewReal(make([]byte, 10), 10, 10, func([]byte) { released++ })
	require.NoError(t, err)

	child, err := NewSubset(parent, 0, 4, -1)
	require.NoError(t, err)
	_ = child

	FreeChain(parent)
	require.Equal(t, 1, released)
}

func TestFreeReleasesUsedInList(t *testing.T) {
	backing := mustReal(t, make([]byte, 10), 10, 10)
	s, err := NewSubset(backing, 0, 4, -1)
	require.NoError(t, err)
	require.Len(t, backing.usedIn, 1)

	// Bring backing's usage count back to zero without FreeChain, so
	// plain Free's own releaseOwn path runs.
	Free(s)
	Free(backing)
	require.Empty(t, backing.usedIn, "Free must drop the used_in list even when it doesn't cascade into it")
}

func TestIncrementDecrementUsage(t *testing.T) {
	var released bool
	b, err := NewReal([]byte{1}, 1, 1, func([]byte) { released = true })
	require.NoError(t, err)

	IncrementUsage(b, 2)
	require.EqualValues(t, 3, b.usageCount.Load())

	DecrementUsage(b, 2)
	require.False(t, released)

	DecrementUsage(b, 1)
	require.True(t, released)
}
