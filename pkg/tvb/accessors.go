package tvb

import (
	"encoding/binary"
	"math"
	"net/netip"

	"github.com/google/uuid"
)

// GetU8 reads a single byte at offset.
func GetU8(b *Buffer, offset int) (uint8, error) {
	p, err := readFixed(b, offset, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// GetU16BE reads a 16-bit big-endian (network order) integer.
func GetU16BE(b *Buffer, offset int) (uint16, error) {
	p, err := readFixed(b, offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p), nil
}

// GetU16LE reads a 16-bit little-endian integer.
func GetU16LE(b *Buffer, offset int) (uint16, error) {
	p, err := readFixed(b, offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// GetU24BE reads a 24-bit big-endian integer, zero-extended into a
// uint32.
func GetU24BE(b *Buffer, offset int) (uint32, error) {
	p, err := readFixed(b, offset, 3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2]), nil
}

// GetU24LE reads a 24-bit little-endian integer, zero-extended into a
// uint32.
func GetU24LE(b *Buffer, offset int) (uint32, error) {
	p, err := readFixed(b, offset, 3)
	if err != nil {
		return 0, err
	}
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16, nil
}

// GetU32BE reads a 32-bit big-endian integer.
func GetU32BE(b *Buffer, offset int) (uint32, error) {
	p, err := readFixed(b, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

// GetU32LE reads a 32-bit little-endian integer.
func GetU32LE(b *Buffer, offset int) (uint32, error) {
	p, err := readFixed(b, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// GetU64BE reads a 64-bit big-endian integer.
func GetU64BE(b *Buffer, offset int) (uint64, error) {
	p, err := readFixed(b, offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// GetU64LE reads a 64-bit little-endian integer.
func GetU64LE(b *Buffer, offset int) (uint64, error) {
	p, err := readFixed(b, offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

// GetF32BE reads a big-endian IEEE-754 single-precision float.
func GetF32BE(b *Buffer, offset int) (float32, error) {
	v, err := GetU32BE(b, offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// GetF32LE reads a little-endian IEEE-754 single-precision float.
func GetF32LE(b *Buffer, offset int) (float32, error) {
	v, err := GetU32LE(b, offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// GetF64BE reads a big-endian IEEE-754 double-precision float.
func GetF64BE(b *Buffer, offset int) (float64, error) {
	v, err := GetU64BE(b, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// GetF64LE reads a little-endian IEEE-754 double-precision float.
func GetF64LE(b *Buffer, offset int) (float64, error) {
	v, err := GetU64LE(b, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// GetIPv4 reads four bytes as an IPv4 address, preserving network
// byte order (it is never host-converted).
func GetIPv4(b *Buffer, offset int) (netip.Addr, error) {
	p, err := readFixed(b, offset, 4)
	if err != nil {
		return netip.Addr{}, err
	}
	return netip.AddrFrom4([4]byte{p[0], p[1], p[2], p[3]}), nil
}

// GetIPv6 reads sixteen bytes as an IPv6 address.
func GetIPv6(b *Buffer, offset int) (netip.Addr, error) {
	p, err := readFixed(b, offset, 16)
	if err != nil {
		return netip.Addr{}, err
	}
	var raw [16]byte
	copy(raw[:], p)
	return netip.AddrFrom16(raw), nil
}

// GetGUID reads a GUID: one 32-bit field, two 16-bit fields, and an
// eight-byte trailer, per the chosen endianness. The wire layout
// matches uuid.UUID's byte representation exactly, so the result
// supports String()/MarshalText()/comparison for free.
func GetGUID(b *Buffer, offset int, littleEndian bool) (uuid.UUID, error) {
	p, err := readFixed(b, offset, 16)
	if err != nil {
		return uuid.UUID{}, err
	}

	var out uuid.UUID
	if littleEndian {
		out[0], out[1], out[2], out[3] = p[3], p[2], p[1], p[0]
		out[4], out[5] = p[5], p[4]
		out[6], out[7] = p[7], p[6]
	} else {
		copy(out[0:4], p[0:4])
		copy(out[4:6], p[4:6])
		copy(out[6:8], p[6:8])
	}
	copy(out[8:16], p[8:16])
	return out, nil
}

// readFixed bounds-checks and resolves a fixed-size, small read
// (always <= 8 bytes for the integer/float accessors, 16 for
// IPv6/GUID) via the fast contiguity path when possible.
func readFixed(b *Buffer, offset, size int) ([]byte, error) {
	absOffset, absLength, err := checkOffsetLength(b, offset, size)
	if err != nil {
		return nil, err
	}
	if size <= 8 && b.hasDirect {
		return ensureContiguousFast(b, absOffset, absLength), nil
	}
	return ensureContiguous(b, absOffset, absLength), nil
}
