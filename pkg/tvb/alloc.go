package tvb

import "sync"

// Allocator is the entry point the two arena collaborators named in
// spec.md §1/§5 must satisfy: a per-packet "ephemeral" arena whose
// contents are invalidated before the next packet begins, and a
// per-capture "seasonal" arena that outlives a packet but not a
// capture. The core never manages either arena's lifetime; it only
// calls Allocate(size) when a get_string/memdup variant asks for
// arena-backed rather than heap-backed storage.
type Allocator interface {
	Allocate(size int) []byte
}

// HeapAllocator satisfies Allocator with plain heap allocation. It is
// the zero-value default for code that has no arena to plug in, and
// the allocator the heap-flavored get_string/memdup variants use
// directly without going through an Allocator at all.
type HeapAllocator struct{}

// Allocate returns a freshly made slice of size bytes.
func (HeapAllocator) Allocate(size int) []byte {
	return make([]byte, size)
}

// Pool size tiers, adapted from the teacher's pkg/rtmp/buf allocator:
// a small fixed ladder of sync.Pool buckets sized for the packet and
// string-copy sizes this package actually produces (get_string,
// memdup, fake_unicode, the decompressor's output accumulator).
const (
	poolSize64   = 1 << 6
	poolSize512  = 1 << 9
	poolSize4K   = 1 << 12
	poolSize64K  = 1 << 16
	poolSize1M   = 1 << 20
	poolSize8M   = 1 << 23
)

var (
	pool64  = sync.Pool{New: func() any { return make([]byte, poolSize64) }}
	pool512 = sync.Pool{New: func() any { return make([]byte, poolSize512) }}
	pool4K  = sync.Pool{New: func() any { return make([]byte, poolSize4K) }}
	pool64K = sync.Pool{New: func() any { return make([]byte, poolSize64K) }}
	pool1M  = sync.Pool{New: func() any { return make([]byte, poolSize1M) }}
	pool8M  = sync.Pool{New: func() any { return make([]byte, poolSize8M) }}
)

// PoolAllocator satisfies Allocator by reusing one of a small ladder
// of sync.Pool buckets by size, falling back to a direct allocation
// above the largest tier. It is a concrete stand-in for the ephemeral
// arena collaborator: a caller wiring a real per-packet arena would
// implement Allocator the same way against its own pool; this
// package's own tests use this one directly.
type PoolAllocator struct{}

// Allocate returns a size-byte slice drawn from the matching pool
// tier. The caller is responsible for calling Release once it is done
// with the slice; the core itself never retains one past the call that
// produced it except inside the buffer it was copied into.
func (PoolAllocator) Allocate(size int) []byte {
	switch {
	case size <= poolSize64:
		return pool64.Get().([]byte)[:size]
	case size <= poolSize512:
		return pool512.Get().([]byte)[:size]
	case size <= poolSize4K:
		return pool4K.Get().([]byte)[:size]
	case size <= poolSize64K:
		return pool64K.Get().([]byte)[:size]
	case size <= poolSize1M:
		return pool1M.Get().([]byte)[:size]
	case size <= poolSize8M:
		return pool8M.Get().([]byte)[:size]
	default:
		return make([]byte, size)
	}
}

// Release returns buf to the pool tier matching its capacity, or lets
// the garbage collector reclaim it if it was never drawn from a pool
// (an oversized allocation, or a slice not produced by Allocate).
func (PoolAllocator) Release(buf []byte) {
	if buf == nil {
		return
	}
	switch cap(buf) {
	case poolSize64:
		pool64.Put(buf[:cap(buf)])
	case poolSize512:
		pool512.Put(buf[:cap(buf)])
	case poolSize4K:
		pool4K.Put(buf[:cap(buf)])
	case poolSize64K:
		pool64K.Put(buf[:cap(buf)])
	case poolSize1M:
		pool1M.Put(buf[:cap(buf)])
	case poolSize8M:
		pool8M.Put(buf[:cap(buf)])
	}
}

// GetStringEphemeral is the arena-backed sibling of GetString: it
// copies length bytes starting at offset through alloc.Allocate
// instead of a plain make([]byte, ...), so a per-packet ephemeral
// arena can serve the copy instead of the heap. GetStringSeasonal is
// the same operation against a longer-lived, per-capture arena; the
// two differ only in which Allocator the caller passes, not in
// algorithm, so they share this implementation.
func GetStringEphemeral(b *Buffer, offset, length int, alloc Allocator) (string, error) {
	return getStringArena(b, offset, length, alloc)
}

// GetStringSeasonal is GetStringEphemeral against a seasonal (per-capture,
// not per-packet) arena. See GetStringEphemeral.
func GetStringSeasonal(b *Buffer, offset, length int, alloc Allocator) (string, error) {
	return getStringArena(b, offset, length, alloc)
}

func getStringArena(b *Buffer, offset, length int, alloc Allocator) (string, error) {
	if err := EnsureBytesExist(b, offset, length); err != nil {
		return "", err
	}
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return "", err
	}
	ptr := ensureContiguous(b, absOffset, absLength)
	out := alloc.Allocate(absLength + 1)
	copy(out, ptr)
	out[absLength] = 0
	return string(out[:absLength]), nil
}

// MemdupEphemeral copies length bytes starting at offset into storage
// drawn from alloc.Allocate, the per-packet-ephemeral-arena sibling of
// Memdup's plain heap copy. MemdupSeasonal is the same operation
// against a per-capture arena.
func MemdupEphemeral(b *Buffer, offset, length int, alloc Allocator) ([]byte, error) {
	return memdupArena(b, offset, length, alloc)
}

// MemdupSeasonal is MemdupEphemeral against a seasonal (per-capture,
// not per-packet) arena. See MemdupEphemeral.
func MemdupSeasonal(b *Buffer, offset, length int, alloc Allocator) ([]byte, error) {
	return memdupArena(b, offset, length, alloc)
}

func memdupArena(b *Buffer, offset, length int, alloc Allocator) ([]byte, error) {
	absOffset, absLength, err := checkOffsetLength(b, offset, length)
	if err != nil {
		return nil, err
	}
	ptr := ensureContiguous(b, absOffset, absLength)
	out := alloc.Allocate(absLength)
	copy(out, ptr)
	return out, nil
}
