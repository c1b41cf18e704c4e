package redisstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"chameleon-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const suggestionPrefix = "suggestion:"

// SuggestionCache shares entries between instances. Redis expires keys itself.
type SuggestionCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewSuggestionCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *SuggestionCache {
	return &SuggestionCache{rdb: rdb, ttl: ttl, logger: log}
}

// Keys embed the user's text, so they are hashed to keep them short.
func cacheKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return suggestionPrefix + hex.EncodeToString(sum[:])
}

func (r *SuggestionCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.rdb.Get(ctx, cacheKey(key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		r.logger.Warn("SuggestionCache", "Redis get failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return val, true
}

func (r *SuggestionCache) Set(ctx context.Context, key, suggestion string) {
	if err := r.rdb.Set(ctx, cacheKey(key), suggestion, r.ttl).Err(); err != nil {
		r.logger.Warn("SuggestionCache", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *SuggestionCache) DeleteExpired(context.Context) {}

func (r *SuggestionCache) TTL() time.Duration {
	return r.ttl
}
