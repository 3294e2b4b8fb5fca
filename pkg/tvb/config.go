package tvb

// CompressConfig tunes the decompressor's output-buffer sizing (§4.7).
// It follows the teacher's Config/DefaultConfig shape (see
// pkg/rtmp.Config/DefaultConfig): a plain struct with a constructor
// returning documented defaults, no env or file parsing inside the
// library itself.
type CompressConfig struct {
	// MinOutputSize is the smallest output window the decompressor
	// ever allocates, regardless of how small the compressed input is.
	MinOutputSize int

	// MaxOutputSize caps the initial output-window estimate. A
	// doubled-compressed-length estimate above this is discarded in
	// favor of MinOutputSize, per spec.md §4.7 step 2 ("this is
	// deliberately conservative").
	MaxOutputSize int

	// MaxReinitAttempts bounds the number of times the decompressor
	// will reset and retry inflation (gzip header skip, then negative
	// window bits) before giving up, mirroring the original's
	// inits_done counter (SPEC_FULL.md Part D).
	MaxReinitAttempts int
}

// DefaultCompressConfig returns the bounds the original tvbuff.c uses:
// a 32 KiB minimum window, a 10 MiB cap, and three total reinit
// attempts.
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		MinOutputSize:     32 * 1024,
		MaxOutputSize:     10 * 1024 * 1024,
		MaxReinitAttempts: 3,
	}
}
