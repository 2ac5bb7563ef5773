package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TokenDenylist remembers access token ids revoked by logout until they expire
type TokenDenylist struct {
	cache *gocache.Cache
}

// NewTokenDenylist creates an empty denylist that purges expired entries every cleanupInterval
func NewTokenDenylist(cleanupInterval time.Duration) *TokenDenylist {
	return &TokenDenylist{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Revoke denies jti until the token would have expired anyway
func (d *TokenDenylist) Revoke(jti string, until time.Time) {
	if jti == "" {
		return
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	d.cache.Set(jti, struct{}{}, ttl)
}

// IsRevoked reports whether jti was revoked
func (d *TokenDenylist) IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	_, found := d.cache.Get(jti)
	return found
}
