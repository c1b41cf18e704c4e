package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type TokenRepository struct {
	cache *cache.Cache
}

func NewTokenRepository() *TokenRepository {
	// Purge revoked ids every 10 minutes; each one only lives until its token expires.
	return &TokenRepository{cache: cache.New(24*time.Hour, 10*time.Minute)}
}

func (r *TokenRepository) Revoke(_ context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (r *TokenRepository) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := r.cache.Get(jti)
	return found, nil
}
