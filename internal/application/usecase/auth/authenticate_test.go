package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendly/backend/internal/application/adapter"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

type fakeIdentity struct {
	claims    *adapter.TokenClaims
	verifyErr error
	user      *adapter.IdentityUser
	userErr   error
	panicOn   string

	verified []string
	looked   []string
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if f.panicOn == "verify" {
		panic("boom")
	}
	f.verified = append(f.verified, token)
	return f.claims, f.verifyErr
}

func (f *fakeIdentity) GetUser(_ context.Context, subject string) (*adapter.IdentityUser, error) {
	f.looked = append(f.looked, subject)
	return f.user, f.userErr
}

func TestAuthenticate_Success(t *testing.T) {
	first := "Ada"
	identity := &fakeIdentity{
		claims: &adapter.TokenClaims{Subject: "user_1"},
		user:   &adapter.IdentityUser{ID: "user_1", Email: "ada@example.com", FirstName: &first},
	}
	uc := NewAuthenticateUseCase(identity)

	user, err := uc.Execute(context.Background(), AuthenticateInput{AuthorizationHeader: "Bearer abc.def.ghi"})
	require.NoError(t, err)

	assert.Equal(t, "user_1", user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, &first, user.FirstName)
	assert.Nil(t, user.LastName)
	assert.Equal(t, []string{"abc.def.ghi"}, identity.verified)
	assert.Equal(t, []string{"user_1"}, identity.looked)
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		identity *fakeIdentity
		kind     domainerror.Kind
		code     domainerror.Code
		message  string
	}{
		{
			name:     "missing header",
			header:   "",
			identity: &fakeIdentity{},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeMissingAuthHeader,
			message:  "Missing or invalid authorization header",
		},
		{
			name:     "wrong scheme",
			header:   "Basic dXNlcjpwYXNz",
			identity: &fakeIdentity{},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeMissingAuthHeader,
			message:  "Missing or invalid authorization header",
		},
		{
			name:     "empty token",
			header:   "Bearer   ",
			identity: &fakeIdentity{},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeMissingAuthHeader,
			message:  "Missing or invalid authorization header",
		},
		{
			name:     "secret not configured",
			header:   "Bearer t",
			identity: &fakeIdentity{verifyErr: domainerror.ErrIdentityNotConfigured},
			kind:     domainerror.KindMisconfigured,
			code:     domainerror.CodeIdentitySecretMissing,
			message:  "Server configuration error: identity provider secret key missing",
		},
		{
			name:     "bad signature",
			header:   "Bearer t",
			identity: &fakeIdentity{verifyErr: fmt.Errorf("%w: signature is invalid", domainerror.ErrTokenInvalid)},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeTokenInvalid,
			message:  "Token verification failed",
		},
		{
			name:     "expired",
			header:   "Bearer t",
			identity: &fakeIdentity{verifyErr: domainerror.ErrTokenExpired},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeTokenExpired,
			message:  "Token verification failed",
		},
		{
			name:     "missing subject",
			header:   "Bearer t",
			identity: &fakeIdentity{claims: &adapter.TokenClaims{}},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeTokenPayload,
			message:  "Invalid token payload",
		},
		{
			name:     "reserved system subject",
			header:   "Bearer t",
			identity: &fakeIdentity{claims: &adapter.TokenClaims{Subject: "system"}},
			kind:     domainerror.KindUnauthorized,
			code:     domainerror.CodeTokenPayload,
			message:  "Invalid token payload",
		},
		{
			name:   "provider answers with the reserved id",
			header: "Bearer t",
			identity: &fakeIdentity{
				claims: &adapter.TokenClaims{Subject: "user_1"},
				user:   &adapter.IdentityUser{ID: "system"},
			},
			kind:    domainerror.KindUnauthorized,
			code:    domainerror.CodeUserLookupFailed,
			message: "Failed to retrieve user details",
		},
		{
			name:   "user lookup fails",
			header: "Bearer t",
			identity: &fakeIdentity{
				claims:  &adapter.TokenClaims{Subject: "user_1"},
				userErr: domainerror.ErrIdentityUserNotFound,
			},
			kind:    domainerror.KindUnauthorized,
			code:    domainerror.CodeUserLookupFailed,
			message: "Failed to retrieve user details",
		},
		{
			name:     "unexpected verify error",
			header:   "Bearer t",
			identity: &fakeIdentity{verifyErr: errors.New("network down")},
			kind:     domainerror.KindInternal,
			code:     domainerror.CodeAuthInternalError,
			message:  "Internal server error during authentication",
		},
		{
			name:     "panic",
			header:   "Bearer t",
			identity: &fakeIdentity{panicOn: "verify"},
			kind:     domainerror.KindInternal,
			code:     domainerror.CodeAuthInternalError,
			message:  "Internal server error during authentication",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthenticateUseCase(tt.identity)

			user, err := uc.Execute(context.Background(), AuthenticateInput{AuthorizationHeader: tt.header})
			require.Error(t, err)
			assert.Nil(t, user)

			de, ok := domainerror.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, de.Kind)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.message, de.Message)
		})
	}
}

func TestAuthenticate_HeaderFailureSkipsProvider(t *testing.T) {
	identity := &fakeIdentity{}
	_, err := NewAuthenticateUseCase(identity).Execute(context.Background(), AuthenticateInput{AuthorizationHeader: "Token x"})

	require.Error(t, err)
	assert.Empty(t, identity.verified)
	assert.Empty(t, identity.looked)
}

func TestAuthenticate_ReservedSubjectSkipsLookup(t *testing.T) {
	identity := &fakeIdentity{
		claims: &adapter.TokenClaims{Subject: "system"},
		user:   &adapter.IdentityUser{ID: "system"},
	}

	_, err := NewAuthenticateUseCase(identity).Execute(context.Background(), AuthenticateInput{AuthorizationHeader: "Bearer t"})
	require.Error(t, err)
	assert.Empty(t, identity.looked)
}
