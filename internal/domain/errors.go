package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the credential is missing, malformed or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the credential is valid but the role lacks the capability.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means the requested transition is not legal from the
	// request's current status.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrCapacityExceeded means no units of the equipment are available.
	ErrCapacityExceeded = errors.New("no units available")
	// ErrInvalidQuantity means an inventory write would leave available
	// outside [0, quantity].
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ValidationError reports a user-correctable problem with a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
