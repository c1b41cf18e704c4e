package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type SuggestionCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSuggestionCache keeps entries for ttl. There is no janitor goroutine:
// expired entries are swept after every insert.
func NewSuggestionCache(ttl time.Duration) *SuggestionCache {
	return &SuggestionCache{
		cache: cache.New(ttl, cache.NoExpiration),
		ttl:   ttl,
	}
}

func (r *SuggestionCache) Get(_ context.Context, key string) (string, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (r *SuggestionCache) Set(_ context.Context, key, suggestion string) {
	r.cache.Set(key, suggestion, cache.DefaultExpiration)
}

func (r *SuggestionCache) DeleteExpired(_ context.Context) {
	r.cache.DeleteExpired()
}

func (r *SuggestionCache) TTL() time.Duration {
	return r.ttl
}

func (r *SuggestionCache) Len() int {
	return r.cache.ItemCount()
}
