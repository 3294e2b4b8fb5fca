package tvb

import "sort"

// ensureContiguous returns a byte slice covering [absOffset,
// absOffset+absLength) that is guaranteed contiguous in memory,
// recursing through Subset backings and, for a Composite whose
// requested range straddles more than one member, materializing a
// flattened copy of the whole composite and caching it so every
// subsequent access is O(1). offset/length are already absolute
// (caller has run checkOffsetLength).
func ensureContiguous(b *Buffer, absOffset, absLength int) []byte {
	if absLength == 0 {
		return []byte{}
	}
	if b.hasDirect {
		return b.directBytes()[absOffset : absOffset+absLength]
	}

	switch b.kind {
	case kindReal:
		// A Real buffer always has a direct pointer (invariant §3.3);
		// reaching here means the buffer was built wrong.
		assertContract(false, "ensureContiguous", "real buffer has no direct pointer")
		return nil

	case kindSubset:
		// backing wasn't contiguous at construction time (e.g. it was
		// an unflattened composite); recurse through it now.
		return ensureContiguous(b.backing, b.subsetStart+absOffset, absLength)
	}

	// kindComposite without a cached flatten.
	idx := findMemberIndex(b, absOffset)
	assertContract(idx >= 0, "ensureContiguous", "offset %d not covered by any composite member", absOffset)

	memberEnd := absOffset + absLength - 1
	if memberEnd <= b.endOffsets[idx] {
		member := b.members[idx]
		memberOffset := absOffset - b.startOffsets[idx]
		return ensureContiguous(member, memberOffset, absLength)
	}

	flatten(b)
	return b.flattened[absOffset : absOffset+absLength]
}

// ensureContiguousFast is a small-read (<=8 bytes) fast path for
// callers that already know b exposes a direct pointer. It still
// rejects negative offsets and out-of-bounds ends, but skips variant
// dispatch entirely.
func ensureContiguousFast(b *Buffer, absOffset, absLength int) []byte {
	assertContract(b.hasDirect, "ensureContiguousFast", "buffer has no direct pointer; use the general path")
	assertContract(absOffset >= 0 && absLength >= 0, "ensureContiguousFast", "negative offset or length")
	ptr := b.directBytes()
	assertContract(absOffset+absLength <= len(ptr), "ensureContiguousFast", "span exceeds buffer")
	return ptr[absOffset : absOffset+absLength]
}

// findMemberIndex returns the index of the composite member whose
// [startOffsets[i], endOffsets[i]] range contains absOffset, or -1.
func findMemberIndex(b *Buffer, absOffset int) int {
	// endOffsets is sorted ascending by construction (running sum of
	// member lengths), so a binary search locates the member in O(log n).
	i := sort.Search(len(b.endOffsets), func(i int) bool {
		return b.endOffsets[i] >= absOffset
	})
	if i >= len(b.endOffsets) {
		return -1
	}
	return i
}

// flatten materializes a composite's full byte range into a newly
// owned contiguous array and caches it as the composite's direct
// pointer. From then on all accesses on this composite are O(1).
func flatten(b *Buffer) {
	assertContract(b.kind == kindComposite, "flatten", "buffer is not a composite")
	if b.hasDirect {
		return
	}

	out := make([]byte, b.length)
	for i, m := range b.members {
		ptr := ensureContiguous(m, 0, m.length)
		copy(out[b.startOffsets[i]:b.endOffsets[i]+1], ptr)
	}
	b.flattened = out
	b.hasDirect = true
}

// GetPtr returns a raw contiguous slice covering [offset,
// offset+length). Composites are flattened if the requested range
// straddles member boundaries.
func GetPtr(b *Buffer, offset, length int) ([]byte, error) {
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return nil, err
	}
	return ensureContiguous(b, absOffset, absLength), nil
}
