package adapter

import (
	"context"
	"time"
)

// TokenClaims holds the verified claims of a bearer token.
type TokenClaims struct {
	Subject   string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IdentityUser is a user profile as returned by the identity provider.
type IdentityUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// IdentityProvider verifies bearer tokens and looks up users.
// VerifyToken returns domainerror.ErrIdentityNotConfigured when no secret is set,
// ErrTokenExpired for expired tokens and ErrTokenInvalid for any other rejection.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
	GetUser(ctx context.Context, subject string) (*IdentityUser, error)
}
