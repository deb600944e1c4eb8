package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

// TokenCache keeps parsed JWT claims in Redis so hot requests skip
// signature verification.
type TokenCache struct {
	redis radix.Client
	ttl   time.Duration
}

// NewTokenCache builds the cache. A nil redis client disables it.
func NewTokenCache(redis radix.Client, ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TokenCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *TokenCache) cacheKey(token string) string {
	sum := sha1.Sum([]byte(token))
	return "auth:jwt:" + hex.EncodeToString(sum[:])
}

// Get returns cached claims for the token, if present.
func (c *TokenCache) Get(ctx context.Context, token string) (*Claims, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	key := c.cacheKey(token)
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", key)); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		// Corrupt entry, drop it and fall back to full parsing.
		_ = c.redis.Do(radix.Cmd(nil, "DEL", key))
		return nil, false, nil
	}
	// The Redis TTL may outlive the token. A hit on an expired token is
	// still a miss.
	if claimsExpired(&claims, time.Now()) {
		_ = c.redis.Do(radix.Cmd(nil, "DEL", key))
		return nil, false, nil
	}
	return &claims, true, nil
}

// Set caches a parse result. The entry never outlives the token itself.
func (c *TokenCache) Set(ctx context.Context, token string, claims *Claims) error {
	if c.redis == nil || claims == nil {
		return nil
	}
	ttl := cacheTTL(claims, time.Now(), c.ttl)
	if ttl <= 0 {
		return nil
	}
	key := c.cacheKey(token)
	body, _ := json.Marshal(claims)
	return c.redis.Do(radix.FlatCmd(nil, "SETEX", key, int64(ttl/time.Second), body))
}

// claimsExpired reports whether the token behind the claims is past its
// expiry. Claims without an expiry are treated as expired, the issuer
// always sets one.
func claimsExpired(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time)
}

// cacheTTL caps the cache entry lifetime at the token's remaining
// lifetime, rounded down to whole seconds for SETEX. A non-positive
// result means the entry is not worth storing.
func cacheTTL(claims *Claims, now time.Time, max time.Duration) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := claims.ExpiresAt.Time.Sub(now).Truncate(time.Second)
	if remaining < max {
		return remaining
	}
	return max
}
