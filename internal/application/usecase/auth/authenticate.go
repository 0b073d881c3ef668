// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

const bearerPrefix = "Bearer "

// AuthenticateInput represents the input for request authentication.
type AuthenticateInput struct {
	AuthorizationHeader string
}

// AuthenticateUseCase resolves a bearer token to the calling user.
type AuthenticateUseCase struct {
	identity adapter.IdentityProvider
}

// NewAuthenticateUseCase creates a new AuthenticateUseCase instance.
func NewAuthenticateUseCase(identity adapter.IdentityProvider) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		identity: identity,
	}
}

// Execute validates the Authorization header and returns the authenticated user.
// Every failure is a *domainerror.DomainError.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, input AuthenticateInput) (user *entity.AuthenticatedUser, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected panic during authentication", "panic", r)
			user = nil
			err = domainerror.Internal(domainerror.CodeAuthInternalError, domainerror.MsgAuthInternalError, nil)
		}
	}()

	token, ok := bearerToken(input.AuthorizationHeader)
	if !ok {
		slog.Warn("Missing or invalid authorization header")
		return nil, domainerror.Unauthorized(domainerror.CodeMissingAuthHeader, domainerror.MsgMissingAuthHeader, nil)
	}

	claims, err := uc.identity.VerifyToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrIdentityNotConfigured):
			slog.Error("Identity provider secret key is not configured")
			return nil, domainerror.Misconfigured(domainerror.CodeIdentitySecretMissing, domainerror.MsgIdentitySecretMissing)
		case errors.Is(err, domainerror.ErrTokenExpired):
			slog.Warn("Token verification failed", "reason", "expired")
			return nil, domainerror.Unauthorized(domainerror.CodeTokenExpired, domainerror.MsgTokenVerification, err)
		case errors.Is(err, domainerror.ErrTokenInvalid):
			slog.Warn("Token verification failed", "error", err)
			return nil, domainerror.Unauthorized(domainerror.CodeTokenInvalid, domainerror.MsgTokenVerification, err)
		default:
			slog.Error("Unexpected error verifying token", "error", err)
			return nil, domainerror.Internal(domainerror.CodeAuthInternalError, domainerror.MsgAuthInternalError, err)
		}
	}

	if claims == nil || strings.TrimSpace(claims.Subject) == "" {
		slog.Warn("Invalid token payload: missing subject claim")
		return nil, domainerror.Unauthorized(domainerror.CodeTokenPayload, domainerror.MsgInvalidTokenPayload, nil)
	}

	// A subject equal to the system owner id would own every shared category
	if entity.IsReservedUserID(claims.Subject) {
		slog.Warn("Invalid token payload: reserved subject", "subject", claims.Subject)
		return nil, domainerror.Unauthorized(domainerror.CodeTokenPayload, domainerror.MsgInvalidTokenPayload, nil)
	}

	profile, err := uc.identity.GetUser(ctx, claims.Subject)
	if err != nil {
		slog.Warn("Failed to fetch user from identity provider", "subject", claims.Subject, "error", err)
		return nil, domainerror.Unauthorized(domainerror.CodeUserLookupFailed, domainerror.MsgUserLookupFailed, err)
	}
	if entity.IsReservedUserID(profile.ID) {
		slog.Warn("Identity provider returned a reserved user id", "subject", claims.Subject)
		return nil, domainerror.Unauthorized(domainerror.CodeUserLookupFailed, domainerror.MsgUserLookupFailed, nil)
	}

	return &entity.AuthenticatedUser{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}, nil
}

// bearerToken extracts a non-empty token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
