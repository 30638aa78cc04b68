package summarizer

import (
	"errors"
	"fmt"
)

// Accepted range for the percentage of sentences kept in a summary.
const (
	MinPercent     = 10
	MaxPercent     = 70
	DefaultPercent = 30
)

// ErrInvalidRange indicates a target percent outside [MinPercent, MaxPercent].
var ErrInvalidRange = errors.New("target percent out of range")

// InvalidRangeError reports the rejected percent. It matches ErrInvalidRange.
type InvalidRangeError struct {
	Percent int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%v: %d not in [%d, %d]", ErrInvalidRange, e.Percent, MinPercent, MaxPercent)
}

// Is reports whether target is ErrInvalidRange.
func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// ValidatePercent returns an *InvalidRangeError when percent is out of range.
func ValidatePercent(percent int) error {
	if percent < MinPercent || percent > MaxPercent {
		return &InvalidRangeError{Percent: percent}
	}
	return nil
}
