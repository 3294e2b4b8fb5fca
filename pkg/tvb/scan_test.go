package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindByteAndFindAnyOf(t *testing.T) {
	b, err := NewReal([]byte("hello world"), 11, 11, nil)
	require.NoError(t, err)

	i, err := FindByte(b, 0, -1, 'w')
	require.NoError(t, err)
	require.Equal(t, 6, i)

	i, err = FindByte(b, 0, -1, 'z')
	require.NoError(t, err)
	require.Equal(t, -1, i)

	i, err = FindAnyOf(b, 0, -1, []byte("wx"))
	require.NoError(t, err)
	require.Equal(t, 6, i)
}

func TestFindByteOnCompositeFlattensWhenStraddling(t *testing.T) {
	a := mustReal(t, []byte("hel"), 3, 3)
	b := mustReal(t, []byte("lo"), 2, 2)
	comp := NewComposite()
	comp.Append(a)
	comp.Append(b)
	require.NoError(t, comp.Finalize())

	i, err := FindByte(comp, 0, -1, 'o')
	require.NoError(t, err)
	require.Equal(t, 4, i)
}

func TestFindLineEndCRLF(t *testing.T) {
	// Boundary scenario #5.
	b, err := NewReal([]byte("abc\r\ndef"), 8, 8, nil)
	require.NoError(t, err)

	lineLen, next, err := FindLineEnd(b, 0, -1, false)
	require.NoError(t, err)
	require.Equal(t, 3, lineLen)
	require.Equal(t, 5, next)
}

func TestFindLineEndDesegmentRequestsMore(t *testing.T) {
	b, err := NewReal([]byte("no newline here"), 15, 15, nil)
	require.NoError(t, err)

	lineLen, _, err := FindLineEnd(b, 0, -1, true)
	require.NoError(t, err)
	require.Equal(t, -1, lineLen)
}

func TestFindLineEndUnquotedIgnoresQuotedNewline(t *testing.T) {
	// Boundary scenario #6.
	b, err := NewReal([]byte("a\"b\nc\"d\n"), 8, 8, nil)
	require.NoError(t, err)

	lineLen, next, err := FindLineEndUnquoted(b, 0, -1)
	require.NoError(t, err)
	require.Equal(t, 7, lineLen)
	require.Equal(t, 8, next)
}

func TestSkipWhitespace(t *testing.T) {
	b, err := NewReal([]byte("   \t\rabc"), 8, 8, nil)
	require.NoError(t, err)

	i, err := SkipWhitespace(b, 0, 8)
	require.NoError(t, err)
	require.Equal(t, 5, i)
}

func TestSkipWhitespaceReverse(t *testing.T) {
	b, err := NewReal([]byte("abc   "), 6, 6, nil)
	require.NoError(t, err)

	i, err := SkipWhitespaceReverse(b, 5)
	require.NoError(t, err)
	require.Equal(t, 3, i)
}
