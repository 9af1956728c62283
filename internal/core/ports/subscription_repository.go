package ports

import (
	"context"
	"time"

	"github.com/teamify/office-api/internal/core/domain"
)

// SubscriptionRepository persists the subscription history of accounts.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	// FindActive returns the most recently created subscription of the
	// account whose status is active and whose end date is unset or strictly
	// after now. Returns domain.ErrNotFound when there is none.
	FindActive(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error)
	// ListByAccount returns all subscriptions, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Subscription, error)
}
