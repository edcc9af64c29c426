package pattern

import (
	"errors"
	"fmt"
)

// ErrInsufficientExamples is returned when fewer than MinExamples names are given
var ErrInsufficientExamples = errors.New("at least 2 example filenames are required")

// ErrNoSuggestions is returned when no rule produced a pattern
var ErrNoSuggestions = errors.New("could not detect any patterns in the examples")

// InvalidPatternError reports a pattern that failed to compile
type InvalidPatternError struct {
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regex %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns the underlying regexp error
func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}
