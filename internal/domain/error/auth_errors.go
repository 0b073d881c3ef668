package error

import "errors"

// Identity provider errors.
var (
	// ErrIdentityNotConfigured is returned when the identity secret key is not set.
	ErrIdentityNotConfigured = errors.New("identity provider secret key not configured")

	// ErrTokenInvalid is returned when a bearer token fails verification.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when a bearer token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrIdentityUserNotFound is returned when the identity provider has no such user.
	ErrIdentityUserNotFound = errors.New("identity user not found")
)

// Authentication error codes.
const (
	// Header errors (01XXXX)
	CodeMissingAuthHeader Code = "AUTH-010001"

	// Token errors (02XXXX)
	CodeTokenInvalid      Code = "AUTH-020001"
	CodeTokenExpired      Code = "AUTH-020002"
	CodeTokenPayload      Code = "AUTH-020003"
	CodeUserLookupFailed  Code = "AUTH-020004"
	CodeUserNotInContext  Code = "AUTH-020005"
	CodeAuthInternalError Code = "AUTH-020006"

	// Configuration errors (03XXXX)
	CodeIdentitySecretMissing Code = "AUTH-030001"
)

// Authentication messages returned to clients.
const (
	MsgMissingAuthHeader     = "Missing or invalid authorization header"
	MsgIdentitySecretMissing = "Server configuration error: identity provider secret key missing"
	MsgTokenVerification     = "Token verification failed"
	MsgInvalidTokenPayload   = "Invalid token payload"
	MsgUserLookupFailed      = "Failed to retrieve user details"
	MsgAuthInternalError     = "Internal server error during authentication"
)
