package exposure

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat reports a notation that cannot be parsed, or a value that
// is not strictly positive.
var ErrInvalidFormat = errors.New("invalid format")

// FormatError names the input field that failed to parse.
type FormatError struct {
	// Field is the input name, e.g. "targetAperture" or "reference.iso".
	Field string
	// Value is the raw input as supplied by the caller.
	Value string
	// Err is the underlying parse error. It always wraps ErrInvalidFormat.
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidFormat}, args...)...)
}
