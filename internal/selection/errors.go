package selection

import "errors"

// ErrNoop is the base of every resolver failure.
var ErrNoop = errors.New("selection is a no-op")

// NoopError explains why a selection was ignored.
type NoopError struct {
	Reason string
}

func (e *NoopError) Error() string {
	return "selection ignored: " + e.Reason
}

func (e *NoopError) Unwrap() error {
	return ErrNoop
}

var (
	ErrNoSelection  = &NoopError{Reason: "no anchor or focus node"}
	ErrCollapsed    = &NoopError{Reason: "selection is empty"}
	ErrBadge        = &NoopError{Reason: "selection starts or ends in a label badge"}
	ErrNoBaseOffset = &NoopError{Reason: "no base offset ancestor"}
)

// IsNoop reports whether err means the selection should be ignored.
func IsNoop(err error) bool {
	return errors.Is(err, ErrNoop)
}
