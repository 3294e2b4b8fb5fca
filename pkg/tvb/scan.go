package tvb

import "bytes"

// FindByte searches for needle starting at offset, scanning at most
// maxlength bytes (-1 means to the end of the buffer). It never
// raises, even if maxlength runs past the buffer's end: the search is
// simply clamped to whatever remains. Returns -1 if needle is not
// found within the scanned range.
func FindByte(b *Buffer, offset, maxlength int, needle byte) (int, error) {
	absOffset, _, err := checkOffsetLength(b, offset, 0)
	if err != nil {
		return -1, err
	}

	limit := scanLimit(b, absOffset, maxlength)
	if b.hasDirect {
		ptr := b.directBytes()[absOffset : absOffset+limit]
		if i := bytes.IndexByte(ptr, needle); i >= 0 {
			return absOffset + i, nil
		}
		return -1, nil
	}

	if b.kind == kindSubset {
		found, err := FindByte(b.backing, b.subsetStart+absOffset, limit, needle)
		if err != nil || found == -1 {
			return -1, err
		}
		return found - b.subsetStart, nil
	}

	// Unflattened composite: materialize once, then scan like Real data.
	flatten(b)
	ptr := b.flattened[absOffset : absOffset+limit]
	if i := bytes.IndexByte(ptr, needle); i >= 0 {
		return absOffset + i, nil
	}
	return -1, nil
}

// FindAnyOf searches for the first occurrence of any byte in needles,
// starting at offset, scanning at most maxlength bytes (-1 means to
// the end of the buffer). Same non-raising, clamped-search contract
// as FindByte.
func FindAnyOf(b *Buffer, offset, maxlength int, needles []byte) (int, error) {
	absOffset, _, err := checkOffsetLength(b, offset, 0)
	if err != nil {
		return -1, err
	}

	limit := scanLimit(b, absOffset, maxlength)
	if b.hasDirect {
		ptr := b.directBytes()[absOffset : absOffset+limit]
		if i := bytes.IndexAny(ptr, string(needles)); i >= 0 {
			return absOffset + i, nil
		}
		return -1, nil
	}

	if b.kind == kindSubset {
		found, err := FindAnyOf(b.backing, b.subsetStart+absOffset, limit, needles)
		if err != nil || found == -1 {
			return -1, err
		}
		return found - b.subsetStart, nil
	}

	flatten(b)
	ptr := b.flattened[absOffset : absOffset+limit]
	if i := bytes.IndexAny(ptr, string(needles)); i >= 0 {
		return absOffset + i, nil
	}
	return -1, nil
}

// scanLimit clamps a requested maxlength (-1 meaning "to the end") to
// however many bytes actually remain past absOffset.
func scanLimit(b *Buffer, absOffset, maxlength int) int {
	remaining := LengthRemaining(b, absOffset)
	if remaining == -1 {
		remaining = 0
	}
	if maxlength == -1 || remaining < maxlength {
		return remaining
	}
	return maxlength
}

// FindLineEnd locates the end of the line starting at offset, looking
// no further than length bytes (-1 means to the end of the buffer).
// It treats a bare CR, a bare LF, or a CR-LF pair as the terminator.
// next is set to the offset just past the terminator (or past the
// scanned range, if none was found). When no terminator is found and
// desegment is true, FindLineEnd returns (-1, 0, nil) to tell the
// caller it should try to gather more data into a single buffer before
// retrying; when desegment is false, it instead returns the length of
// whatever data it did see, as if the line ran to the end of the range.
func FindLineEnd(b *Buffer, offset, length int, desegment bool) (lineLen, next int, err error) {
	if length == -1 {
		length = LengthRemaining(b, offset)
		if length == -1 {
			length = 0
		}
	}
	eob := offset + length

	eol, err := FindAnyOf(b, offset, length, []byte("\r\n"))
	if err != nil {
		return 0, 0, err
	}
	if eol == -1 {
		if desegment {
			return -1, 0, nil
		}
		return eob - offset, eob, nil
	}

	lineLen = eol - offset
	c, err := GetU8(b, eol)
	if err != nil {
		return 0, 0, err
	}
	if c == '\r' {
		if eol+1 >= eob {
			if desegment {
				return -1, 0, nil
			}
		} else {
			nextC, err := GetU8(b, eol+1)
			if err != nil {
				return 0, 0, err
			}
			if nextC == '\n' {
				eol++
			}
		}
	}
	return lineLen, eol + 1, nil
}

// FindLineEndUnquoted is like FindLineEnd but treats a double-quoted
// run of bytes as opaque: a CR or LF appearing between an opening and
// closing '"' is not a line terminator. It never asks for desegmentation;
// if no terminator is found it behaves as FindLineEnd does with
// desegment=false.
func FindLineEndUnquoted(b *Buffer, offset, length int) (lineLen, next int, err error) {
	if length == -1 {
		length = LengthRemaining(b, offset)
		if length == -1 {
			length = 0
		}
	}
	eob := offset + length

	cur := offset
	quoted := false
	for {
		var found int
		if quoted {
			found, err = FindByte(b, cur, eob-cur, '"')
		} else {
			found, err = FindAnyOf(b, cur, eob-cur, []byte("\r\n\""))
		}
		if err != nil {
			return 0, 0, err
		}
		if found == -1 {
			return eob - offset, eob, nil
		}

		if quoted {
			quoted = false
		} else {
			c, err := GetU8(b, found)
			if err != nil {
				return 0, 0, err
			}
			switch {
			case c == '"':
				quoted = true
			default:
				lineLen = found - offset
				if c == '\r' && found+1 < eob {
					nextC, err := GetU8(b, found+1)
					if err != nil {
						return 0, 0, err
					}
					if nextC == '\n' {
						found++
					}
				}
				return lineLen, found + 1, nil
			}
		}

		cur = found + 1
		if cur >= eob {
			return eob - offset, eob, nil
		}
	}
}

// SkipWhitespace returns the offset of the first non-whitespace byte
// (space, tab, CR, or LF) at or after offset, never scanning past
// offset+maxlength.
func SkipWhitespace(b *Buffer, offset, maxlength int) (int, error) {
	end := offset + maxlength
	if tvbLen := b.Length(); end >= tvbLen {
		end = tvbLen
	}

	counter := offset
	for counter < end {
		c, err := GetU8(b, counter)
		if err != nil {
			break
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		counter++
	}
	return counter, nil
}

// SkipWhitespaceReverse scans backward from offset and returns the
// offset just past the last non-whitespace byte at or before it (the
// end of the text once trailing whitespace is cut off). Byte 0 is never
// examined. Used to trim trailing
// whitespace off a line already located by FindLineEnd.
func SkipWhitespaceReverse(b *Buffer, offset int) (int, error) {
	counter := offset
	for counter > 0 {
		c, err := GetU8(b, counter)
		if err != nil {
			return 0, err
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		counter--
	}
	counter++
	return counter, nil
}
