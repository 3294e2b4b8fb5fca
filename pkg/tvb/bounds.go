package tvb

import "math"

// normalizeOffsetLength resolves a possibly-negative offset and a
// sentinel length (-1 meaning "to end of captured data") into
// absolute, non-negative values, classifying an out-of-range offset as
// ErrCapturedBounds or ErrReportedBounds. An offset past the captured
// data is ErrReportedBounds when the requested span (a -1 length
// counting as one byte) would reach past the reported length, and
// ErrCapturedBounds otherwise. For an in-range offset it performs no
// range check against the end of the requested span — see
// checkOffsetLength for that. Mirrors compute_offset_length in the
// original tvbuff.c, kept as a separate step so the non-raising probes
// LengthRemaining and OffsetExists can reuse it without paying for the
// final range check.
func normalizeOffsetLength(b *Buffer, offset, length int) (absOffset, absLength int, err error) {
	if offset >= 0 {
		switch {
		case offset > b.reportedLength:
			return 0, 0, boundsErrorf(ErrReportedBounds, "offset %d beyond reported length %d", offset, b.reportedLength)
		case offset > b.length:
			span := length
			if length == -1 {
				span = 1
			}
			if span > b.reportedLength-offset {
				return 0, 0, boundsErrorf(ErrReportedBounds, "offset %d length %d beyond reported length %d", offset, length, b.reportedLength)
			}
			return 0, 0, boundsErrorf(ErrCapturedBounds, "offset %d beyond captured length %d", offset, b.length)
		default:
			absOffset = offset
		}
	} else {
		negOffset := -offset
		switch {
		case negOffset > b.reportedLength:
			return 0, 0, boundsErrorf(ErrReportedBounds, "offset %d beyond reported length %d", offset, b.reportedLength)
		case negOffset > b.length:
			return 0, 0, boundsErrorf(ErrCapturedBounds, "offset %d beyond captured length %d", offset, b.length)
		default:
			absOffset = b.length + offset
		}
	}

	switch {
	case length < -1:
		return 0, 0, boundsErrorf(ErrCapturedBounds, "negative length %d is invalid", length)
	case length == -1:
		absLength = b.length - absOffset
	default:
		absLength = length
	}

	return absOffset, absLength, nil
}

// checkOffsetLength normalizes (offset, length) against b and then
// range-checks the resulting span's end against b.length and
// b.reportedLength. The "end equals length" case (offset exactly one
// past the last byte, with length 0) is in-bounds: this lets a
// dissector build a zero-length subset for the next protocol layer, so
// that the next layer raises rather than this one.
func checkOffsetLength(b *Buffer, offset, length int) (absOffset, absLength int, err error) {
	assertContract(b.initialized, "checkOffsetLength", "buffer not initialized")

	absOffset, absLength, err = normalizeOffsetLength(b, offset, length)
	if err != nil {
		return 0, 0, err
	}

	end := absOffset + absLength
	if end < absOffset {
		// Overflow: clamp so the range check below is forced past-end.
		end = math.MaxInt
	}

	switch {
	case end <= b.length:
		return absOffset, absLength, nil
	case end <= b.reportedLength:
		return 0, 0, boundsErrorf(ErrCapturedBounds, "span [%d,%d) exceeds captured length %d", absOffset, end, b.length)
	default:
		return 0, 0, boundsErrorf(ErrReportedBounds, "span [%d,%d) exceeds reported length %d", absOffset, end, b.reportedLength)
	}
}
