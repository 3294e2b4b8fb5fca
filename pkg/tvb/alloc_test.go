package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAllocatorRoundTrip(t *testing.T) {
	var alloc PoolAllocator
	buf := alloc.Allocate(100)
	require.Len(t, buf, 100)
	require.GreaterOrEqual(t, cap(buf), 100)
	alloc.Release(buf)
}

func TestPoolAllocatorOversizedFallsBackToDirectAllocation(t *testing.T) {
	var alloc PoolAllocator
	buf := alloc.Allocate(poolSize8M + 1)
	require.Len(t, buf, poolSize8M+1)
	alloc.Release(buf) // must not panic on an allocation that never came from a pool
}

func TestGetStringEphemeralUsesAllocator(t *testing.T) {
	b, err := NewReal([]byte("hello"), 5, 5, nil)
	require.NoError(t, err)

	s, err := GetStringEphemeral(b, 0, 5, HeapAllocator{})
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestMemdupEphemeralCopiesBytes(t *testing.T) {
	b, err := NewReal([]byte{1, 2, 3, 4}, 4, 4, nil)
	require.NoError(t, err)

	out, err := MemdupEphemeral(b, 1, 2, HeapAllocator{})
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, out)
}

func TestMemdupSeasonalCopiesBytes(t *testing.T) {
	b, err := NewReal([]byte{1, 2, 3, 4}, 4, 4, nil)
	require.NoError(t, err)

	out, err := MemdupSeasonal(b, 1, 2, HeapAllocator{})
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, out)
}

func TestGetStringSeasonalUsesAllocator(t *testing.T) {
	b, err := NewReal([]byte("hello"), 5, 5, nil)
	require.NoError(t, err)

	s, err := GetStringSeasonal(b, 0, 5, HeapAllocator{})
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestMemdupCopiesToHeap(t *testing.T) {
	b, err := NewReal([]byte{1, 2, 3, 4}, 4, 4, nil)
	require.NoError(t, err)

	out, err := Memdup(b, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, out)
}

func TestMemcpyIntoRejectsUndersizedTarget(t *testing.T) {
	b, err := NewReal([]byte{1, 2, 3, 4}, 4, 4, nil)
	require.NoError(t, err)

	dst := make([]byte, 1)
	_, err = MemcpyInto(b, 0, 4, dst)
	require.Error(t, err)

	dst = make([]byte, 4)
	n, err := MemcpyInto(b, 0, 4, dst)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, dst)
}
