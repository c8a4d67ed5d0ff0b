package annotate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a range outside the text or with start >= end.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptyLabel indicates a label unit or paint request without a name.
	ErrEmptyLabel = errors.New("empty label name")
)

// RangeError describes a malformed range handed to the index.
type RangeError struct {
	Start  int
	End    int
	Label  string
	Length int   // rune length of the text
	Err    error // ErrInvalidRange or ErrEmptyLabel
}

func (e *RangeError) Error() string {
	if errors.Is(e.Err, ErrEmptyLabel) {
		return fmt.Sprintf("range [%d,%d): %v", e.Start, e.End, e.Err)
	}
	return fmt.Sprintf("label %q range [%d,%d) out of bounds for text of length %d", e.Label, e.Start, e.End, e.Length)
}

func (e *RangeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidRange
}

func checkRange(start, end int, label string, length int) error {
	if label == "" {
		return &RangeError{Start: start, End: end, Length: length, Err: ErrEmptyLabel}
	}
	if start < 0 || end > length || start >= end {
		return &RangeError{Start: start, End: end, Label: label, Length: length, Err: ErrInvalidRange}
	}
	return nil
}
