package usecase

import (
	"errors"
	"fmt"
)

// Error kinds returned by every service. Handlers map them to HTTP status codes
// with errors.Is; anything else is an internal failure.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// kindError carries a client-facing message while unwrapping to its kind.
type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string { return e.message }

func (e *kindError) Unwrap() error { return e.kind }

func invalidInput(format string, args ...any) error {
	return &kindError{kind: ErrInvalidInput, message: fmt.Sprintf(format, args...)}
}

func unauthenticated(message string) error {
	return &kindError{kind: ErrUnauthenticated, message: message}
}

func forbidden(message string) error {
	return &kindError{kind: ErrForbidden, message: message}
}

func notFound(message string) error {
	return &kindError{kind: ErrNotFound, message: message}
}
