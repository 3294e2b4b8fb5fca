// Package tvb implements a layered, bounds-checked byte-buffer
// abstraction for presenting heterogeneous packet storage (captured
// frames, reassembled fragments, decompressed payloads) through a
// single uniform read interface. See SPEC_FULL.md for the full design.
package tvb

import "sync/atomic"

type bufferKind uint8

const (
	kindReal bufferKind = iota
	kindSubset
	kindComposite
)

// Buffer is an immutable view over bytes, one of three shapes: Real
// (owns or borrows a contiguous range), Subset (a window into a
// backing Buffer), or Composite (an ordered concatenation of member
// Buffers). A Buffer's shape is fixed at construction and never
// changes; callers never need to type-switch, the variant is internal.
type Buffer struct {
	kind bufferKind

	length         int
	reportedLength int
	initialized    bool

	dataSource *Buffer
	usageCount atomic.Int32
	usedIn     []*Buffer

	// hasDirect is true once directBytes() can be trusted to return a
	// valid (possibly zero-length) contiguous slice without recursion.
	// Kept separate from nil-checking the slice fields themselves,
	// since a legitimately empty buffer's backing slice is nil too.
	hasDirect bool

	// kindReal
	data        []byte
	releaseFunc func([]byte)

	// kindSubset
	backing      *Buffer
	subsetStart  int
	subsetLength int
	directPtr    []byte // cached data[start:start+length] when backing is contiguous

	// kindComposite
	members      []*Buffer
	startOffsets []int
	endOffsets   []int
	finalized    bool
	flattened    []byte // cached once materialized by flatten
}

// Length returns the number of bytes actually captured. Panics if the
// buffer is not yet initialized (only possible for an un-finalized
// Composite).
func (b *Buffer) Length() int {
	assertContract(b.initialized, "Length", "buffer not initialized")
	return b.length
}

// ReportedLength returns the number of bytes the wire protocol claims
// exist, which may exceed Length() for a truncated capture.
func (b *Buffer) ReportedLength() int {
	assertContract(b.initialized, "ReportedLength", "buffer not initialized")
	return b.reportedLength
}

// DataSource returns the transitive root Real buffer this view derives
// from. It identifies "the packet" to higher layers.
func (b *Buffer) DataSource() *Buffer {
	return b.dataSource
}

// NewReal constructs a buffer that owns or borrows data[0:length]
// directly, with release invoked (if non-nil) when the buffer's usage
// count reaches zero. reportedLength must be >= -1; -1 inherits
// length. Parameters are validated before anything is allocated (the
// original leaks its header on this validation failure; this rewrite
// never allocates before validating).
func NewReal(data []byte, length, reportedLength int, release func([]byte)) (*Buffer, error) {
	if reportedLength < -1 {
		return nil, boundsErrorf(ErrReportedBounds, "reported length %d must be >= -1", reportedLength)
	}
	if reportedLength == -1 {
		reportedLength = length
	}

	b := &Buffer{
		kind:           kindReal,
		data:           data,
		length:         length,
		reportedLength: reportedLength,
		initialized:    true,
		hasDirect:      true,
		releaseFunc:    release,
	}
	b.dataSource = b
	b.usageCount.Store(1)
	return b, nil
}

// NewRealChild constructs a Real buffer the same way NewReal does, and
// additionally registers it as used-in parent: freeing parent (via
// FreeChain) also frees this child. Unlike NewSubset, a real child
// does not bump parent's usage count — it only
// rides along in parent's teardown graph.
func NewRealChild(parent *Buffer, data []byte, length, reportedLength int, release func([]byte)) (*Buffer, error) {
	child, err := NewReal(data, length, reportedLength, release)
	if err != nil {
		return nil, err
	}
	RegisterChild(parent, child)
	return child, nil
}

// NewSubset constructs a zero-copy window into backing spanning
// [backingOffset, backingOffset+backingLength). reportedLength of -1
// inherits backing.ReportedLength()-backingOffset; otherwise it may
// legally exceed the actual window, representing wire-claimed data
// beyond the capture. The window is bounds-checked against backing
// before anything is allocated.
func NewSubset(backing *Buffer, backingOffset, backingLength, reportedLength int) (*Buffer, error) {
	assertContract(backing != nil, "NewSubset", "backing buffer is nil")
	assertContract(backing.initialized, "NewSubset", "backing buffer not initialized")

	if reportedLength < -1 {
		return nil, boundsErrorf(ErrReportedBounds, "reported length %d must be >= -1", reportedLength)
	}

	absOffset, absLength, err := checkOffsetLength(backing, backingOffset, backingLength)
	if err != nil {
		return nil, err
	}

	if reportedLength == -1 {
		reportedLength = backing.reportedLength - absOffset
	}

	s := &Buffer{
		kind:           kindSubset,
		backing:        backing,
		subsetStart:    absOffset,
		subsetLength:   absLength,
		length:         absLength,
		reportedLength: reportedLength,
		initialized:    true,
		dataSource:     backing.dataSource,
	}
	s.usageCount.Store(1)

	if backing.hasDirect {
		s.hasDirect = true
		s.directPtr = backing.directBytes()[absOffset : absOffset+absLength]
	}

	IncrementUsage(backing, 1)
	RegisterChild(backing, s)
	return s, nil
}

// NewComposite begins construction of an ordered concatenation of
// member buffers. The returned Buffer is not initialized (Length,
// ReportedLength, and all accessors panic) until Finalize is called.
func NewComposite() *Buffer {
	return &Buffer{kind: kindComposite}
}

// Append adds member to the end of a composite's member list. Must be
// called before Finalize.
func (b *Buffer) Append(member *Buffer) {
	assertContract(b.kind == kindComposite, "Append", "buffer is not a composite")
	assertContract(!b.finalized, "Append", "composite already finalized")
	b.members = append(b.members, member)
}

// Prepend adds member to the front of a composite's member list. Must
// be called before Finalize.
func (b *Buffer) Prepend(member *Buffer) {
	assertContract(b.kind == kindComposite, "Prepend", "buffer is not a composite")
	assertContract(!b.finalized, "Prepend", "composite already finalized")
	b.members = append([]*Buffer{member}, b.members...)
}

// Finalize computes the composite's length and offset tables from its
// current member list and makes the composite immutable. A
// composite's reported length always equals its captured length: it
// has no independent wire length of its own (see DESIGN.md Open
// Question #1 on SetReportedLength).
func (b *Buffer) Finalize() error {
	assertContract(b.kind == kindComposite, "Finalize", "buffer is not a composite")
	assertContract(!b.finalized, "Finalize", "composite already finalized")
	assertContract(len(b.members) > 0, "Finalize", "composite has no members")

	b.startOffsets = make([]int, len(b.members))
	b.endOffsets = make([]int, len(b.members))

	running := 0
	for i, m := range b.members {
		assertContract(m.initialized, "Finalize", "member %d not initialized", i)
		b.startOffsets[i] = running
		running += m.length
		b.endOffsets[i] = running - 1
	}

	b.length = running
	b.reportedLength = running
	b.initialized = true
	b.finalized = true
	b.usageCount.Store(1)
	b.dataSource = b // a composite has no single backing packet; it is its own root

	// Finalize does not bump each member's usage count: a freshly
	// constructed member already carries the one reference its builder
	// holds, and the composite adopts that reference outright rather
	// than acquiring an additional one. RegisterChild still records the
	// derivation edge so FreeChain(member) cascades forward into b, and
	// releaseOwn's composite case cascades backward by spending the
	// adopted reference when b itself is freed.
	for _, m := range b.members {
		RegisterChild(m, b)
	}
	return nil
}

// directBytes returns the buffer's cached contiguous byte slice if one
// is already available without recursion or flattening, or nil.
func (b *Buffer) directBytes() []byte {
	switch b.kind {
	case kindReal:
		return b.data
	case kindSubset:
		return b.directPtr
	case kindComposite:
		return b.flattened
	}
	return nil
}
