// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendly/backend/internal/application/adapter"
	domainerror "github.com/spendly/backend/internal/domain/error"
)

// tokenLeeway absorbs clock skew between us and the identity provider.
const tokenLeeway = 5 * time.Second

// IdentityClientConfig configures the identity provider client.
type IdentityClientConfig struct {
	SecretKey string
	APIURL    string
	Issuer    string
	Timeout   time.Duration
}

// IdentityClient verifies HS256 session tokens and fetches user profiles
// from the identity provider's backend API.
type IdentityClient struct {
	secret     []byte
	apiURL     string
	issuer     string
	httpClient *http.Client
}

// NewIdentityClient creates a new identity provider client.
func NewIdentityClient(cfg IdentityClientConfig) *IdentityClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &IdentityClient{
		secret:     []byte(cfg.SecretKey),
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		issuer:     cfg.Issuer,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// sessionClaims are the claims carried by a session token.
type sessionClaims struct {
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// VerifyToken validates the token signature and time claims.
func (c *IdentityClient) VerifyToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if len(c.secret) == 0 {
		return nil, domainerror.ErrIdentityNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domainerror.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", domainerror.ErrTokenInvalid, err)
	}

	result := &adapter.TokenClaims{
		Subject:   claims.Subject,
		SessionID: claims.SessionID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

// identityUserResponse is the user payload of the identity provider's API.
type identityUserResponse struct {
	ID                    string  `json:"id"`
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	PrimaryEmailAddressID string  `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// primaryEmail returns the primary address, else the first one, else "".
func (r *identityUserResponse) primaryEmail() string {
	for _, e := range r.EmailAddresses {
		if e.ID == r.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(r.EmailAddresses) > 0 {
		return r.EmailAddresses[0].EmailAddress
	}
	return ""
}

// GetUser fetches the user profile for a token subject.
func (c *IdentityClient) GetUser(ctx context.Context, subject string) (*adapter.IdentityUser, error) {
	if len(c.secret) == 0 {
		return nil, domainerror.ErrIdentityNotConfigured
	}

	endpoint := fmt.Sprintf("%s/users/%s", c.apiURL, url.PathEscape(subject))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+string(c.secret))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainerror.ErrIdentityUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var body identityUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("identity provider returned a user without id")
	}

	return &adapter.IdentityUser{
		ID:        body.ID,
		Email:     body.primaryEmail(),
		FirstName: body.FirstName,
		LastName:  body.LastName,
	}, nil
}

// Ensure IdentityClient implements adapter.IdentityProvider.
var _ adapter.IdentityProvider = (*IdentityClient)(nil)
