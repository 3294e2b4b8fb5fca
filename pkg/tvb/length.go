package tvb

import "errors"

// LengthRemaining returns the number of bytes available starting at
// offset (as if length were -1), or -1 (not an error) if offset is out
// of range.
func LengthRemaining(b *Buffer, offset int) int {
	assertContract(b.initialized, "LengthRemaining", "buffer not initialized")
	absOffset, absLength, err := normalizeOffsetLength(b, offset, -1)
	if err != nil {
		return -1
	}
	_ = absOffset
	return absLength
}

// EnsureLengthRemaining is like LengthRemaining but raises when offset
// is out of range or when zero bytes remain. The returned error's kind
// reflects whether offset has passed captured length or reported
// length.
func EnsureLengthRemaining(b *Buffer, offset int) (int, error) {
	assertContract(b.initialized, "EnsureLengthRemaining", "buffer not initialized")
	absOffset, absLength, err := checkOffsetLength(b, offset, -1)
	if err != nil {
		return 0, err
	}
	if absLength == 0 {
		// offset landed exactly on length; there really is nothing left.
		if absOffset >= b.reportedLength {
			return 0, boundsErrorf(ErrReportedBounds, "no bytes remaining at offset %d", offset)
		}
		return 0, boundsErrorf(ErrCapturedBounds, "no bytes remaining at offset %d", offset)
	}
	return absLength, nil
}

// BytesExist reports whether length bytes are available starting at
// offset. Never raises. bytesExist(b, o, 0) is always true for any
// offset that is itself in range.
func BytesExist(b *Buffer, offset, length int) bool {
	assertContract(b.initialized, "BytesExist", "buffer not initialized")
	_, _, err := checkOffsetLength(b, offset, length)
	return err == nil
}

// EnsureBytesExist raises if length bytes are not available starting
// at offset. Deliberately different from the normalization rule used
// elsewhere: any negative length, including -1, is treated as "more
// bytes than could possibly exist" and unconditionally raises
// ErrReportedBounds rather than being interpreted as "to end of
// buffer".
func EnsureBytesExist(b *Buffer, offset, length int) error {
	assertContract(b.initialized, "EnsureBytesExist", "buffer not initialized")
	if length < 0 {
		return boundsErrorf(ErrReportedBounds, "negative length %d can never exist", length)
	}
	_, _, err := checkOffsetLength(b, offset, length)
	return err
}

// OffsetExists reports whether offset names an in-range byte, strictly
// offset < Length() (not <=, unlike the "equals length" exception
// elsewhere in this package).
func OffsetExists(b *Buffer, offset int) bool {
	assertContract(b.initialized, "OffsetExists", "buffer not initialized")
	absOffset, _, err := normalizeOffsetLength(b, offset, 0)
	if err != nil {
		return false
	}
	return absOffset < b.length
}

// ErrReportedLengthGrow is returned by SetReportedLength when asked to
// grow rather than shrink the reported length.
var ErrReportedLengthGrow = errors.New("tvb: reported length can only shrink")

// ErrCompositeReportedLength is returned by SetReportedLength on a
// Composite. The original tvbuff.c never calls tvb_set_reported_length
// on a TVBUFF_COMPOSITE; a Composite's reported length is fixed equal
// to its captured length at Finalize time and has no independent wire
// length to shrink. See DESIGN.md Open Question #1.
var ErrCompositeReportedLength = errors.New("tvb: SetReportedLength is not defined for a composite buffer")

// SetReportedLength shrinks b's reported length to r, and additionally
// clamps b.Length() down if it now exceeds the new reported length.
// Reported length can only shrink monotonically: attempting to grow it
// returns ErrReportedLengthGrow.
func SetReportedLength(b *Buffer, r int) error {
	assertContract(b.initialized, "SetReportedLength", "buffer not initialized")
	if b.kind == kindComposite {
		return ErrCompositeReportedLength
	}
	if r > b.reportedLength {
		return ErrReportedLengthGrow
	}
	b.reportedLength = r
	if b.length > r {
		b.length = r
	}
	return nil
}
