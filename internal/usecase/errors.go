package usecase

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials covers every login failure mode so responses never
	// reveal whether an email is registered.
	ErrInvalidCredentials = errors.New("credentials do not match")
	// ErrEmailTaken indicates the normalized email already belongs to a user.
	ErrEmailTaken = errors.New("email already exists")
	// ErrSessionRequired indicates an operation ran without a decoded session.
	ErrSessionRequired = errors.New("session required")
)

// ValidationError carries the user-facing outcome of a failed flow: either a
// single message, a per-field map, or both. Handlers render it verbatim; it
// never wraps raw storage errors.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// NewValidationMessage builds a message-only validation error.
func NewValidationMessage(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewFieldErrors builds a field-scoped validation error.
func NewFieldErrors(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError unwraps err into a ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
