package error

import "errors"

// Email errors.
var (
	// ErrEmailQueueFailed is returned when an email fails to be queued.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrInvalidTemplate is returned when an unknown email template is requested.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrEmailJobNotFound is returned when an email job is not found.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrPermanentEmailFailure is returned when the provider rejects an email for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when a send may succeed on retry.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// Email error codes.
const (
	// Queue errors (01XXXX)
	CodeEmailQueueFailed Code = "EML-010001"

	// Send errors (02XXXX)
	CodePermanentEmailFailure Code = "EML-020002"
	CodeTemporaryEmailFailure Code = "EML-020003"

	// Template errors (03XXXX)
	CodeInvalidTemplate      Code = "EML-030001"
	CodeTemplateRenderFailed Code = "EML-030002"
)

// NewEmailError creates an internal DomainError for the email subsystem.
func NewEmailError(code Code, message string, err error) *DomainError {
	return Internal(code, message, err)
}
