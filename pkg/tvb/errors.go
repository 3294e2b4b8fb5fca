package tvb

import "fmt"

// ErrCapturedBounds indicates a request reached past what was actually
// captured, but still within what the wire protocol claims exists.
// Callers typically report "packet short".
var ErrCapturedBounds = fmt.Errorf("tvb: captured bounds exceeded")

// ErrReportedBounds indicates a request reached past what the wire
// protocol itself claims exists. Callers typically flag a malformed
// packet.
var ErrReportedBounds = fmt.Errorf("tvb: reported bounds exceeded")

// boundsErrorf wraps one of the two bounds sentinels with call-specific
// detail so errors.Is(err, ErrCapturedBounds) still matches downstream.
func boundsErrorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// ContractViolation is raised via panic for programmer-contract errors:
// uninitialized buffers, a variant-specific routine called on the wrong
// variant, an inverted constructor call, or a bit-width outside the
// declared range for its accessor. These are not recoverable and are
// never wrapped in the two bounds error kinds.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("tvb: contract violation in %s: %s", e.Op, e.Detail)
}

func assertContract(cond bool, op, format string, args ...any) {
	if !cond {
		panic(&ContractViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
	}
}
