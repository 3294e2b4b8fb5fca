package tvb

import (
	"bytes"
	"fmt"
	"strings"
)

// Strsize returns the size, including the terminating NUL, of the
// NUL-terminated string starting at offset. Raises ErrCapturedBounds
// if the buffer is truncated before the NUL is found, or
// ErrReportedBounds if the wire data itself ends first.
func Strsize(b *Buffer, offset int) (int, error) {
	absOffset, _, err := checkOffsetLength(b, offset, 0)
	if err != nil {
		return 0, err
	}

	nulOffset, err := FindByte(b, absOffset, -1, 0)
	if err != nil {
		return 0, err
	}
	if nulOffset == -1 {
		if b.Length() < b.ReportedLength() {
			return 0, boundsErrorf(ErrCapturedBounds, "no NUL found before end of captured data at offset %d", offset)
		}
		return 0, boundsErrorf(ErrReportedBounds, "no NUL found before end of reported data at offset %d", offset)
	}
	return nulOffset - absOffset + 1, nil
}

// Strnlen returns the length of the string starting at offset, not
// including a terminating NUL, searching at most maxlength bytes
// (-1 means to the end of the buffer). Returns -1 if no NUL is found
// within the scanned range; never raises for that reason.
func Strnlen(b *Buffer, offset, maxlength int) (int, error) {
	absOffset, _, err := checkOffsetLength(b, offset, 0)
	if err != nil {
		return 0, err
	}
	found, err := FindByte(b, absOffset, maxlength, 0)
	if err != nil {
		return 0, err
	}
	if found == -1 {
		return -1, nil
	}
	return found - absOffset, nil
}

// Memeql reports whether the size bytes starting at offset equal want
// exactly. It never raises: if fewer than size bytes are available it
// simply reports false.
func Memeql(b *Buffer, offset int, want []byte) bool {
	absOffset, absLength, err := checkOffsetLength(b, offset, len(want))
	if err != nil {
		return false
	}
	got := ensureContiguous(b, absOffset, absLength)
	return bytes.Equal(got, want)
}

// Strneql reports whether the size bytes starting at offset equal want
// exactly, treated as raw bytes (no case folding). Same non-raising
// contract as Memeql.
func Strneql(b *Buffer, offset int, want string) bool {
	return Memeql(b, offset, []byte(want))
}

// Strncaseeql is Strneql with ASCII case-insensitive comparison.
func Strncaseeql(b *Buffer, offset int, want string) bool {
	absOffset, absLength, err := checkOffsetLength(b, offset, len(want))
	if err != nil {
		return false
	}
	got := ensureContiguous(b, absOffset, absLength)
	return strings.EqualFold(string(got), want)
}

// FakeUnicode reads count big- or little-endian UTF-16 code units
// starting at offset and renders them as ASCII, replacing every code
// unit >= 256 with '.'. It is not a real Unicode transcoding, only the
// same lossy approximation the format this package is modeled on uses
// when no proper charset conversion is available.
func FakeUnicode(b *Buffer, offset, count int, littleEndian bool) (string, error) {
	if err := EnsureBytesExist(b, offset, 2*count); err != nil {
		return "", err
	}

	out := make([]byte, count)
	for i := 0; i < count; i++ {
		var v uint16
		var err error
		if littleEndian {
			v, err = GetU16LE(b, offset)
		} else {
			v, err = GetU16BE(b, offset)
		}
		if err != nil {
			return "", err
		}
		if v < 256 {
			out[i] = byte(v)
		} else {
			out[i] = '.'
		}
		offset += 2
	}
	return string(out), nil
}

// GetString copies length bytes starting at offset into a new string.
// Raises if the buffer ends before length bytes are available.
func GetString(b *Buffer, offset, length int) (string, error) {
	if err := EnsureBytesExist(b, offset, length); err != nil {
		return "", err
	}
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return "", err
	}
	ptr := ensureContiguous(b, absOffset, absLength)
	return string(ptr), nil
}

// GetStringz reads a NUL-terminated string starting at offset and
// returns it without the trailing NUL, along with the total number of
// bytes consumed (the string plus its terminator). Raises if no NUL
// is found before the buffer or wire data ends.
func GetStringz(b *Buffer, offset int) (s string, consumed int, err error) {
	size, err := Strsize(b, offset)
	if err != nil {
		return "", 0, err
	}
	raw, err := GetString(b, offset, size)
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSuffix(raw, "\x00"), size, nil
}

// GetNstringz looks for a NUL-terminated string starting at offset and
// copies at most bufsize bytes, including the terminating NUL, into
// buffer (which must have length >= bufsize). Unlike GetStringz, it
// never raises just because the buffer runs out before the NUL is
// found: if the NUL isn't located within bufsize-1 bytes, or the
// tvbuff itself ends first, it copies whatever it found, places a NUL
// immediately after, and returns (-1, bytesCopied). Otherwise it
// returns the string length (excluding the NUL) and the bytes copied
// (length+1).
//
// bufsize must be > 0.
func GetNstringz(b *Buffer, offset int, buffer []byte) (stringLen, bytesCopied int, err error) {
	bufsize := len(buffer)
	assertContract(bufsize != 0, "GetNstringz", "bufsize must be > 0")

	if bufsize == 1 {
		buffer[0] = 0
		return 0, 1, nil
	}

	absOffset, _, err := checkOffsetLength(b, offset, 0)
	if err != nil {
		return 0, 0, err
	}

	remaining := LengthRemaining(b, absOffset)
	if remaining <= 0 {
		return 0, 0, boundsErrorf(ErrReportedBounds, "no bytes remaining at offset %d", offset)
	}

	// Leave room for the terminator we may have to force ourselves: at
	// most bufsize-1 data bytes, and never more than what's captured.
	limit := bufsize - 1
	if remaining < limit {
		limit = remaining
	}

	strLen, err := Strnlen(b, absOffset, limit)
	if err != nil {
		return 0, 0, err
	}
	if strLen == -1 {
		if _, err := copyInto(b, absOffset, limit, buffer); err != nil {
			return 0, 0, err
		}
		buffer[limit] = 0
		return -1, limit + 1, nil
	}

	if _, err := copyInto(b, absOffset, strLen+1, buffer); err != nil {
		return 0, 0, err
	}
	return strLen, strLen + 1, nil
}

// GetNstringz0 is like GetNstringz but never returns -1: when the
// string was truncated before its NUL was found, it forces a NUL at
// buffer[len(buffer)-1] and reports the resulting length instead.
func GetNstringz0(b *Buffer, offset int, buffer []byte) (int, error) {
	n, copied, err := GetNstringz(b, offset, buffer)
	if err != nil {
		return 0, err
	}
	if n == -1 {
		buffer[len(buffer)-1] = 0
		return copied - 1, nil
	}
	return n, nil
}

// copyInto copies length bytes starting at offset in b into dst,
// which must be at least length bytes long.
func copyInto(b *Buffer, offset, length int, dst []byte) (int, error) {
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return 0, err
	}
	if len(dst) < absLength {
		return 0, fmt.Errorf("tvb: destination buffer too small: need %d, have %d", absLength, len(dst))
	}
	ptr := ensureContiguous(b, absOffset, absLength)
	copy(dst, ptr)
	return absLength, nil
}

// MemcpyInto copies length bytes starting at offset in b into target,
// the caller-owned-destination counterpart to Memdup: the caller picks
// where the bytes land, and MemcpyInto never allocates on their behalf.
func MemcpyInto(b *Buffer, offset, length int, target []byte) (int, error) {
	return copyInto(b, offset, length, target)
}

// Memdup copies length bytes starting at offset into a freshly
// heap-allocated slice. MemdupEphemeral and MemdupSeasonal (alloc.go)
// are the arena-backed siblings that copy through a caller-supplied
// Allocator instead.
func Memdup(b *Buffer, offset, length int) ([]byte, error) {
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, absLength)
	copy(out, ensureContiguous(b, absOffset, absLength))
	return out, nil
}
