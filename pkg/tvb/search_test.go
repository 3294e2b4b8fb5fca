package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindSubBuffer(t *testing.T) {
	hay, err := NewReal([]byte("the quick brown fox"), 19, 19, nil)
	require.NoError(t, err)
	needle, err := NewReal([]byte("brown"), 5, 5, nil)
	require.NoError(t, err)

	i, err := FindSubBuffer(hay, needle, 0)
	require.NoError(t, err)
	require.Equal(t, 10, i)
}

func TestFindSubBufferNotFound(t *testing.T) {
	hay, err := NewReal([]byte("the quick brown fox"), 19, 19, nil)
	require.NoError(t, err)
	needle, err := NewReal([]byte("zzz"), 3, 3, nil)
	require.NoError(t, err)

	i, err := FindSubBuffer(hay, needle, 0)
	require.NoError(t, err)
	require.Equal(t, -1, i)
}

func TestFindSubBufferRespectsFromOffset(t *testing.T) {
	hay, err := NewReal([]byte("aXbXcX"), 6, 6, nil)
	require.NoError(t, err)
	needle, err := NewReal([]byte("X"), 1, 1, nil)
	require.NoError(t, err)

	i, err := FindSubBuffer(hay, needle, 2)
	require.NoError(t, err)
	require.Equal(t, 3, i)
}

func TestFindSubBufferAcrossCompositeMembers(t *testing.T) {
	a := mustReal(t, []byte("hel"), 3, 3)
	b := mustReal(t, []byte("lo world"), 8, 8)
	comp := NewComposite()
	comp.Append(a)
	comp.Append(b)
	require.NoError(t, comp.Finalize())

	needle, err := NewReal([]byte("llo"), 3, 3, nil)
	require.NoError(t, err)

	i, err := FindSubBuffer(comp, needle, 0)
	require.NoError(t, err)
	require.Equal(t, 2, i)
}
