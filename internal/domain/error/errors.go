// Package error defines domain-specific errors for the Spendly application.
package error

import (
	"errors"
	"fmt"
)

// Persistence errors. Repositories translate driver errors into these so
// callers never inspect database messages.
var (
	// ErrRecordNotFound is returned when a row is missing or was deleted before a write.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUniqueViolation is returned when a write breaks a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a write references a missing row.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// Kind classifies a DomainError. Each kind maps to exactly one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindMisconfigured
	KindUnavailable
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindMisconfigured:
		return "misconfigured"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Code is a stable error code. Format: AREA-XXYYYY where XX is the group
// and YYYY the specific error.
type Code string

// DomainError represents a classified error with code and message.
// Message is safe to show to API clients.
type DomainError struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a DomainError of the given kind.
func New(kind Kind, code Code, message string, err error) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a 400-class error for a rejected input field.
func Validation(code Code, message string) *DomainError {
	return New(KindValidation, code, message, nil)
}

// NotFound creates an error for a missing resource.
func NotFound(code Code, message string, err error) *DomainError {
	return New(KindNotFound, code, message, err)
}

// Forbidden creates an error for a caller that does not own the resource.
func Forbidden(code Code, message string) *DomainError {
	return New(KindForbidden, code, message, nil)
}

// Conflict creates an error for duplicates and dependent records.
func Conflict(code Code, message string, err error) *DomainError {
	return New(KindConflict, code, message, err)
}

// Unauthorized creates an authentication error.
func Unauthorized(code Code, message string, err error) *DomainError {
	return New(KindUnauthorized, code, message, err)
}

// Misconfigured creates an error for missing server-side configuration.
func Misconfigured(code Code, message string) *DomainError {
	return New(KindMisconfigured, code, message, nil)
}

// Unavailable creates an error for a disabled or failing external dependency.
func Unavailable(code Code, message string, err error) *DomainError {
	return New(KindUnavailable, code, message, err)
}

// Internal creates an error for unexpected failures.
func Internal(code Code, message string, err error) *DomainError {
	return New(KindInternal, code, message, err)
}

// As extracts a DomainError from an error chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	de, ok := As(err)
	return ok && de.Kind == kind
}
