package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendly/backend/internal/application/adapter"
)

const identityUserKeyPrefix = "identity:user:"

// CachedIdentityProvider caches user profiles in Redis in front of another provider.
// Cache failures are logged and bypassed.
type CachedIdentityProvider struct {
	next  adapter.IdentityProvider
	redis redis.Cmdable
	ttl   time.Duration
}

// NewCachedIdentityProvider wraps next with a Redis profile cache.
func NewCachedIdentityProvider(next adapter.IdentityProvider, rdb redis.Cmdable, ttl time.Duration) *CachedIdentityProvider {
	return &CachedIdentityProvider{
		next:  next,
		redis: rdb,
		ttl:   ttl,
	}
}

// VerifyToken is never cached.
func (p *CachedIdentityProvider) VerifyToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return p.next.VerifyToken(ctx, token)
}

// GetUser returns the cached profile, fetching and storing it on a miss.
// A profile removed at the provider stays valid here until its entry expires.
func (p *CachedIdentityProvider) GetUser(ctx context.Context, subject string) (*adapter.IdentityUser, error) {
	key := identityUserKeyPrefix + subject

	cached, err := p.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user adapter.IdentityUser
		if jsonErr := json.Unmarshal(cached, &user); jsonErr == nil {
			return &user, nil
		}
		slog.Warn("Discarding unreadable cached identity user", "subject", subject)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Identity user cache read failed", "error", err, "subject", subject)
	}

	user, err := p.next.GetUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(user)
	if err != nil {
		slog.Warn("Failed to encode identity user for cache", "error", err, "subject", subject)
		return user, nil
	}
	if err := p.redis.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		slog.Warn("Identity user cache write failed", "error", err, "subject", subject)
	}

	return user, nil
}

// Ensure CachedIdentityProvider implements adapter.IdentityProvider.
var _ adapter.IdentityProvider = (*CachedIdentityProvider)(nil)
