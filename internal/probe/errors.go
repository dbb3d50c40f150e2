package probe

import "fmt"

// ProbeError reports a failed or timed-out runtime query. It is transient:
// the monitor logs it and retries on the next cycle.
type ProbeError struct {
	Op  string
	Err error
}

func NewProbeError(op string, err error) *ProbeError {
	return &ProbeError{Op: op, Err: err}
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe: %s: %v", e.Op, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
