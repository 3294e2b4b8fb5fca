package tvb

import "bytes"

// FindSubBuffer locates needle's bytes inside haystack, searching from
// offset, and returns the absolute offset of the first match or -1 if
// not found. Both buffers are materialized contiguous first (a
// Composite straddling the match region is flattened), since the
// search itself works over a plain byte slice.
func FindSubBuffer(haystack, needle *Buffer, from int) (int, error) {
	absFrom, _, err := checkOffsetLength(haystack, from, 0)
	if err != nil {
		return -1, err
	}

	hay := ensureContiguous(haystack, 0, haystack.Length())
	hay = hay[absFrom:]

	needleBytes := ensureContiguous(needle, 0, needle.Length())
	if len(needleBytes) == 0 {
		return absFrom, nil
	}

	i := bytes.Index(hay, needleBytes)
	if i < 0 {
		return -1, nil
	}
	return absFrom + i, nil
}
