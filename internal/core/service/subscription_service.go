package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// SubscriptionService records checkouts. Payment is simulated upstream; the
// service trusts the payment method and id it is given.
type SubscriptionService struct {
	repo  ports.SubscriptionRepository
	setup ports.SetupStatusRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewSubscriptionService(repo ports.SubscriptionRepository, setup ports.SetupStatusRepository, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, setup: setup, log: log, now: time.Now}
}

func (s *SubscriptionService) Create(ctx context.Context, in ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	if err := validateSubscription(in); err != nil {
		return nil, err
	}

	start := s.now().UTC()
	end := in.BillingCycle.EndDate(start)
	sub := &domain.Subscription{
		ID:            uuid.NewString(),
		AccountID:     in.AccountID,
		PlanID:        strings.TrimSpace(in.PlanID),
		PlanName:      strings.TrimSpace(in.PlanName),
		BillingCycle:  in.BillingCycle,
		Status:        domain.SubscriptionActive,
		PaymentMethod: in.PaymentMethod,
		PaymentID:     in.PaymentID,
		StartDate:     start,
		EndDate:       &end,
		CreatedAt:     start,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.log.Error().Err(err).Str("account_id", in.AccountID).Msg("failed to create subscription")
		return nil, err
	}

	// The setup status is advisory; the subscription row is what counts.
	if err := s.setup.MarkSubscriptionComplete(ctx, in.AccountID); err != nil {
		s.log.Warn().Err(err).Str("account_id", in.AccountID).Msg("failed to mark subscription milestone")
	}

	s.log.Info().
		Str("account_id", in.AccountID).
		Str("plan_id", sub.PlanID).
		Str("billing_cycle", string(sub.BillingCycle)).
		Msg("subscription created")

	return sub, nil
}

func (s *SubscriptionService) Overview(ctx context.Context, accountID string) (*ports.SubscriptionOverview, error) {
	subs, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	overview := &ports.SubscriptionOverview{Subscriptions: subs}
	active, err := s.repo.FindActive(ctx, accountID, s.now())
	switch {
	case err == nil:
		overview.Active = active
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return overview, nil
}

func (s *SubscriptionService) RequireActive(ctx context.Context, accountID string) (*domain.Subscription, error) {
	sub, err := s.repo.FindActive(ctx, accountID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSubscriptionRequired
		}
		return nil, err
	}
	return sub, nil
}

func validateSubscription(in ports.CreateSubscriptionInput) error {
	var msgs []string
	if in.AccountID == "" {
		return domain.ErrInvalidSession
	}
	if strings.TrimSpace(in.PlanID) == "" {
		msgs = append(msgs, "plan id is required")
	}
	if strings.TrimSpace(in.PlanName) == "" {
		msgs = append(msgs, "plan name is required")
	}
	if !in.BillingCycle.Valid() {
		msgs = append(msgs, "billing cycle must be monthly or yearly")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		msgs = append(msgs, "payment method is required")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}
