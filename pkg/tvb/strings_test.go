package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrsizeAndStrnlen(t *testing.T) {
	b, err := NewReal([]byte("hello\x00world"), 11, 11, nil)
	require.NoError(t, err)

	size, err := Strsize(b, 0)
	require.NoError(t, err)
	require.Equal(t, 6, size)

	n, err := Strnlen(b, 0, -1)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = Strnlen(b, 6, 3)
	require.NoError(t, err)
	require.Equal(t, -1, n, "no NUL within the scanned range must return -1, not raise")
}

func TestStrsizeClassifiesByTruncation(t *testing.T) {
	b, err := NewReal([]byte("abcd"), 4, 16, nil)
	require.NoError(t, err)
	_, err = Strsize(b, 0)
	require.ErrorIs(t, err, ErrCapturedBounds)

	full, err := NewReal([]byte("abcd"), 4, 4, nil)
	require.NoError(t, err)
	_, err = Strsize(full, 0)
	require.ErrorIs(t, err, ErrReportedBounds)
}

func TestGetStringzTrimsTerminator(t *testing.T) {
	b, err := NewReal([]byte("hi\x00tail"), 7, 7, nil)
	require.NoError(t, err)

	s, consumed, err := GetStringz(b, 0)
	require.NoError(t, err)
	require.Equal(t, "hi", s)
	require.Equal(t, 3, consumed)
}

func TestGetNstringzTruncatesAndMarksMinusOne(t *testing.T) {
	b, err := NewReal([]byte("abcdef"), 6, 6, nil)
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, copied, err := GetNstringz(b, 0, buf)
	require.NoError(t, err)
	require.Equal(t, -1, n)
	require.Equal(t, 4, copied)
	require.Equal(t, byte(0), buf[3])
}

func TestGetNstringzFindsTerminatorWithinBuffer(t *testing.T) {
	b, err := NewReal([]byte("ab\x00cdef"), 7, 7, nil)
	require.NoError(t, err)

	buf := make([]byte, 6)
	n, copied, err := GetNstringz(b, 0, buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 3, copied)
}

func TestGetNstringzBufsizeOneReturnsImmediately(t *testing.T) {
	b, err := NewReal([]byte("abc"), 3, 3, nil)
	require.NoError(t, err)

	buf := make([]byte, 1)
	n, copied, err := GetNstringz(b, 0, buf)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, 1, copied)
	require.Equal(t, byte(0), buf[0])
}

func TestFakeUnicodeLittleEndian(t *testing.T) {
	b, err := NewReal([]byte{0x41, 0x00}, 2, 2, nil)
	require.NoError(t, err)

	s, err := FakeUnicode(b, 0, 1, true)
	require.NoError(t, err)
	require.Equal(t, "A", s)
}

func TestFakeUnicodeReplacesWideCodeUnits(t *testing.T) {
	b, err := NewReal([]byte{0x00, 0x41, 0x30, 0x42}, 4, 4, nil)
	require.NoError(t, err)

	s, err := FakeUnicode(b, 0, 2, false)
	require.NoError(t, err)
	require.Equal(t, "A.", s)
}

func TestMemeqlFamily(t *testing.T) {
	b, err := NewReal([]byte("Hello"), 5, 5, nil)
	require.NoError(t, err)

	require.True(t, Memeql(b, 0, []byte("Hello")))
	require.False(t, Memeql(b, 0, []byte("World")))
	require.False(t, Memeql(b, 0, []byte("Hello, world")), "fewer bytes available than requested must compare unequal, not raise")

	require.True(t, Strneql(b, 0, "Hello"))
	require.True(t, Strncaseeql(b, 0, "HELLO"))
	require.False(t, Strncaseeql(b, 0, "World"))
}

func TestGetStringBoundsChecked(t *testing.T) {
	b, err := NewReal([]byte("hello"), 5, 5, nil)
	require.NoError(t, err)

	s, err := GetString(b, 0, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = GetString(b, 0, 6)
	require.Error(t, err)
}
