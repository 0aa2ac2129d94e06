package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation names a position id the ledger
// does not know (or, for price updates and adjustments, one that is closed).
var ErrNotFound = errors.New("position not found")

// ErrAlreadyClosed is returned by Close when the position has already reached
// its terminal state. Closing twice is an error, never a silent no-op.
var ErrAlreadyClosed = errors.New("position already closed")

// ValidationError reports a malformed or missing field in caller input.
// Callers must fix the input; the operation is never retried as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
