package tvb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Boundary scenario #2: truncation classification. Backing has length
// 4, reported 16.
func TestCheckOffsetLengthTruncationClassification(t *testing.T) {
	b, err := NewReal([]byte{1, 2, 3, 4}, 4, 16, nil)
	require.NoError(t, err)

	v, err := GetU8(b, 3)
	require.NoError(t, err)
	require.Equal(t, uint8(4), v)

	_, err = GetU8(b, 4)
	require.ErrorIs(t, err, ErrCapturedBounds)

	_, err = GetU8(b, 16)
	require.ErrorIs(t, err, ErrReportedBounds)
}

func TestCheckOffsetLengthMatrix(t *testing.T) {
	type tc struct {
		name           string
		length         int
		reportedLength int
		offset         int
		size           int
		wantKind       error // nil means no error expected
	}
	cases := []tc{
		{"in range", 10, 10, 0, 10, nil},
		{"exactly at end, zero length is in-bounds", 10, 10, 10, 0, nil},
		{"past captured, within reported", 4, 16, 0, 5, ErrCapturedBounds},
		{"past reported", 4, 16, 0, 17, ErrReportedBounds},
		{"negative offset within range", 10, 10, -3, 3, nil},
		{"negative offset past captured", 4, 16, -20, 1, ErrReportedBounds},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := NewReal(make([]byte, c.length), c.length, c.reportedLength, nil)
			require.NoError(t, err)

			_, _, err = checkOffsetLength(b, c.offset, c.size)
			if c.wantKind == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.wantKind)
			}
		})
	}
}

func TestNormalizeOffsetLengthRejectsLengthBelowNegativeOne(t *testing.T) {
	b, err := NewReal(make([]byte, 4), 4, 4, nil)
	require.NoError(t, err)

	_, _, err = normalizeOffsetLength(b, 0, -2)
	require.ErrorIs(t, err, ErrCapturedBounds)
}

func TestCheckOffsetLengthOverflowClampsPastEnd(t *testing.T) {
	b, err := NewReal(make([]byte, 4), 4, 4, nil)
	require.NoError(t, err)

	_, _, err = checkOffsetLength(b, 1, int(^uint(0)>>1))
	require.ErrorIs(t, err, ErrReportedBounds)
}
