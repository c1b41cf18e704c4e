package contract

import (
	"context"
	"time"
)

// SuggestionCache stores generated continuations keyed by the full request.
// Entries older than the TTL are never returned.
type SuggestionCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, suggestion string)
	// DeleteExpired sweeps stale entries; backends with native expiry may no-op.
	DeleteExpired(ctx context.Context)
	TTL() time.Duration
}
