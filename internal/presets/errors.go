package presets

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no preset has the requested name
var ErrNotFound = errors.New("preset not found")

// ValidationError represents a schema-level problem in a preset library
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// PresetError is a problem with a single preset
type PresetError struct {
	Index   int    // 0-based position in the file, -1 when adding
	Name    string // May be empty when the name itself is missing
	Field   string
	Message string
	Cause   error // Underlying error, e.g. the regex compile error
}

func (e *PresetError) Error() string {
	where := fmt.Sprintf("patterns[%d]", e.Index)
	if e.Index < 0 {
		where = "preset"
	}
	if e.Name != "" {
		where += fmt.Sprintf(" (%s)", e.Name)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", where, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", where, e.Field, e.Message)
}

func (e *PresetError) Unwrap() error {
	return e.Cause
}
