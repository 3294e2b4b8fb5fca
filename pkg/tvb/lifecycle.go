package tvb

// Reference counting and cascading teardown.
//
// usageCount tracks how many live references point at a Buffer and
// controls when its own release fires. usedIn is a separate graph:
// the set of buffers that were built on top of b (its subsets, its
// composite parents, its registered real children). FreeChain walks
// usedIn to tear down an entire derivation tree from one call, the way
// a dissector frees a reassembled tvbuff and expects every subset
// carved from it along the way to go with it.

// IncrementUsage bumps b's reference count by n.
func IncrementUsage(b *Buffer, n int32) {
	b.usageCount.Add(n)
}

// DecrementUsage drops b's reference count by n and releases b's own
// backing storage once the count reaches zero. It does not touch
// usedIn; callers that want cascading teardown should use FreeChain.
func DecrementUsage(b *Buffer, n int32) {
	if b.usageCount.Add(-n) > 0 {
		return
	}
	releaseOwn(b)
}

// RegisterChild records that child was derived from parent, for later
// FreeChain traversal. It does not affect either buffer's usage count.
func RegisterChild(parent, child *Buffer) {
	parent.usedIn = append(parent.usedIn, child)
}

// Free decrements b's usage count by one and releases its own backing
// storage if that was the last reference. It does not cascade into
// buffers derived from b; use FreeChain for that.
func Free(b *Buffer) {
	DecrementUsage(b, 1)
}

// FreeChain releases b and, recursively, every buffer registered as
// used-in b (subsets built on it, composites it was appended to,
// children registered via NewRealChild), regardless of their own
// usage counts. It is for tearing down a whole derivation tree at
// once, e.g. when a packet's top-level Real buffer goes out of scope
// and every subset dissectors carved from it should go with it.
func FreeChain(b *Buffer) {
	// Snapshot before recursing: releaseOwn(b) below clears b.usedIn,
	// but range already captured this slice header, so the walk is
	// unaffected by that clear happening before or after it returns.
	for _, child := range b.usedIn {
		FreeChain(child)
	}
	releaseOwn(b)
}

// releaseOwn runs b's own release callback, if any, exactly once, and
// always drops b's usedIn list: once a buffer is released its
// derivation graph is no longer reachable through it (per §4.8, "free"
// always releases the used_in list regardless of variant).
func releaseOwn(b *Buffer) {
	b.usedIn = nil
	switch b.kind {
	case kindReal:
		if b.releaseFunc != nil {
			b.releaseFunc(b.data)
			b.releaseFunc = nil
			b.data = nil
			b.hasDirect = false
		}
	case kindSubset:
		DecrementUsage(b.backing, 1)
	case kindComposite:
		for _, m := range b.members {
			DecrementUsage(m, 1)
		}
		b.startOffsets = nil
		b.endOffsets = nil
		b.flattened = nil
		b.hasDirect = false
	}
}
