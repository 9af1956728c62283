package ports

import (
	"context"
	"time"
)

// RateLimiter counts attempts per key inside a fixed window.
type RateLimiter interface {
	// Allow records one attempt and reports whether it is within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// ResetTokenStore keeps password reset tokens until they expire or are used.
type ResetTokenStore interface {
	Save(ctx context.Context, token, accountID string, ttl time.Duration) error
	// Consume returns the account id for token and deletes it. Returns
	// domain.ErrInvalidResetToken when the token is unknown or expired.
	Consume(ctx context.Context, token string) (string, error)
}
