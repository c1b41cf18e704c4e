package contract

import (
	"context"
	"time"
)

// TokenRepository remembers signed-out token ids until the token would have expired anyway.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
