package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// ResetTokenStore keeps password-reset tokens until they expire or are used.
// Key format: pwreset:<token>
type ResetTokenStore struct {
	client *redis.Client
}

var _ ports.ResetTokenStore = (*ResetTokenStore)(nil)

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

func (s *ResetTokenStore) Save(ctx context.Context, token, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetTokenKey(token), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume returns the account bound to token and deletes it in the same
// command, so a token can be redeemed once.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	accountID, err := s.client.GetDel(ctx, resetTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return accountID, nil
}

func resetTokenKey(token string) string {
	return "pwreset:" + token
}
