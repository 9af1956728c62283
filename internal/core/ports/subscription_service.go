package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// CreateSubscriptionInput is the checkout payload after simulated payment.
type CreateSubscriptionInput struct {
	AccountID     string
	PlanID        string
	PlanName      string
	BillingCycle  domain.BillingCycle
	PaymentMethod string
	PaymentID     string
}

// SubscriptionOverview is the subscription history of an account.
type SubscriptionOverview struct {
	Subscriptions []*domain.Subscription
	Active        *domain.Subscription
}

type SubscriptionService interface {
	Create(ctx context.Context, in CreateSubscriptionInput) (*domain.Subscription, error)
	Overview(ctx context.Context, accountID string) (*SubscriptionOverview, error)
	// RequireActive returns domain.ErrSubscriptionRequired when the account
	// has no active subscription.
	RequireActive(ctx context.Context, accountID string) (*domain.Subscription, error)
}
