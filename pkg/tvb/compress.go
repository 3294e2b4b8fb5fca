package tvb

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// DecompressStatus distinguishes the two non-error outcomes spec.md
// §9 calls out as conflated in the original: a clean decode (OK), a
// decode that ran out of captured data mid-stream and returned
// whatever it had decoded so far (Partial), and an unrecoverable
// failure that produced nothing (Failed). The original's "return null
// on error" and "return partial on buffer exhaustion" are otherwise
// indistinguishable to the caller.
type DecompressStatus int

const (
	DecompressOK DecompressStatus = iota
	DecompressPartial
	DecompressFailed
)

// gzipMagic is the two-byte signature that triggers the gzip-header
// repair path below.
var gzipMagic = [2]byte{0x1f, 0x8b}

const deflateMethod = 8 // Z_DEFLATED

// Uncompress runs a zlib/deflate/gzip decoder over [offset,
// offset+comprlen) of tvb and returns a new owned Real buffer holding
// the decompressed bytes. A non-nil error means the request itself was
// invalid (bad bounds); DecompressFailed with a nil buffer means the
// compressed data could not be decoded at all; DecompressPartial means
// the stream ran out of captured bytes before inflation finished and
// the returned buffer holds whatever was decoded up to that point.
func Uncompress(tvb *Buffer, offset, comprlen int, cfg CompressConfig) (*Buffer, DecompressStatus, error) {
	raw, err := GetPtr(tvb, offset, comprlen)
	if err != nil {
		return nil, DecompressFailed, err
	}

	// Copy into a scratch buffer: the decoder needs a stable pointer
	// independent of tvb's own lifetime, and the gzip-header walk below
	// mutates nothing but must bound itself against this copy's length.
	compr := append([]byte(nil), raw...)

	bufsiz := comprlen * 2
	if bufsiz < cfg.MinOutputSize || bufsiz > cfg.MaxOutputSize {
		bufsiz = cfg.MinOutputSize
	}

	isGzip := len(compr) >= 2 && compr[0] == gzipMagic[0] && compr[1] == gzipMagic[1]

	strategies := []func() io.Reader{
		func() io.Reader { return zlibReader(compr) },
	}
	if isGzip {
		strategies = append(strategies, func() io.Reader {
			rest, ok := skipGzipHeader(compr)
			if !ok {
				return erroringReader{io.ErrUnexpectedEOF}
			}
			return flate.NewReader(bytes.NewReader(rest))
		})
	} else {
		strategies = append(strategies, func() io.Reader {
			return flate.NewReader(bytes.NewReader(compr))
		})
	}

	var accum *bytes.Buffer
	status := DecompressFailed
	for initsDone := 1; initsDone <= cfg.MaxReinitAttempts && initsDone <= len(strategies) && status == DecompressFailed; initsDone++ {
		accum, status = decodeAll(strategies[initsDone-1](), bufsiz)
	}

	if status == DecompressFailed {
		return nil, DecompressFailed, nil
	}

	out := accum.Bytes()
	newBuf, err := NewReal(out, len(out), len(out), nil)
	if err != nil {
		return nil, DecompressFailed, err
	}
	return newBuf, status, nil
}

// UncompressChild is Uncompress followed by registering the result as
// used-in parent, so parent's FreeChain also releases it.
func UncompressChild(parent, tvb *Buffer, offset, comprlen int, cfg CompressConfig) (*Buffer, DecompressStatus, error) {
	out, status, err := Uncompress(tvb, offset, comprlen, cfg)
	if err != nil || out == nil {
		return out, status, err
	}
	RegisterChild(parent, out)
	return out, status, nil
}

// zlibReader attempts to open compr as a zlib stream (2-byte header +
// deflate body + trailing checksum). zlib.NewReader reads and
// validates the header eagerly, so a non-zlib stream (e.g. gzip, or
// raw deflate with no header at all) fails here before any inflation
// is attempted — matching the original's first inflateInit2/inflate
// pass against "standard window bits".
func zlibReader(compr []byte) io.Reader {
	r, err := zlib.NewReader(bytes.NewReader(compr))
	if err != nil {
		return erroringReader{err}
	}
	return r
}

type erroringReader struct{ err error }

func (e erroringReader) Read([]byte) (int, error) { return 0, e.err }

// decodeAll drains r in bufsiz-sized passes into a growing
// accumulator. A clean io.EOF is DecompressOK; io.ErrUnexpectedEOF
// (the stream was truncated mid-frame, i.e. the capture ran out
// before the wire data did) returns whatever was decoded so far as
// DecompressPartial; any other error is DecompressFailed with nothing
// accumulated, so the caller can discard it and try the next strategy.
func decodeAll(r io.Reader, bufsiz int) (*bytes.Buffer, DecompressStatus) {
	accum := &bytes.Buffer{}
	window := make([]byte, bufsiz)
	for {
		n, err := r.Read(window)
		if n > 0 {
			accum.Write(window[:n])
		}
		if err == nil {
			continue
		}
		if err == io.EOF {
			return accum, DecompressOK
		}
		if err == io.ErrUnexpectedEOF {
			if accum.Len() > 0 {
				return accum, DecompressPartial
			}
			return accum, DecompressFailed
		}
		return &bytes.Buffer{}, DecompressFailed
	}
}

// skipGzipHeader walks past a gzip member header (RFC 1952 §2.3),
// returning the remaining raw-deflate payload. Every pointer advance
// is bounds-checked against len(compr): this is the exact field walk
// SPEC_FULL.md Part D calls out as the fix for the original's CWE-126
// unbounded read past the end of the compressed buffer.
func skipGzipHeader(compr []byte) ([]byte, bool) {
	const (
		flagExtra   = 1 << 2
		flagName    = 1 << 3
		flagComment = 1 << 4
	)

	i := 2 // past the two magic bytes, already verified by the caller
	if i >= len(compr) || compr[i] != deflateMethod {
		return nil, false
	}
	i++

	if i >= len(compr) {
		return nil, false
	}
	flags := compr[i]
	i++

	// MTIME (4) + XFL (1) + OS (1) = 6 bytes, per RFC 1952. (The
	// original's "skip 7 bytes" starts from the flags byte, which is
	// already consumed above.)
	if i+6 > len(compr) {
		return nil, false
	}
	i += 6

	if flags&flagExtra != 0 {
		if i+2 > len(compr) {
			return nil, false
		}
		xsize := int(compr[i]) | int(compr[i+1])<<8
		i += 2
		if i+xsize > len(compr) {
			return nil, false
		}
		i += xsize
	}

	if flags&flagName != 0 {
		for i < len(compr) && compr[i] != 0 {
			i++
		}
		if i >= len(compr) {
			return nil, false
		}
		i++ // skip the terminator
	}

	if flags&flagComment != 0 {
		for i < len(compr) && compr[i] != 0 {
			i++
		}
		if i >= len(compr) {
			return nil, false
		}
		i++
	}

	if i > len(compr) {
		return nil, false
	}
	return compr[i:], true
}
