package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// EntitlementService is the single place that decides which onboarding step
// an account is on. The access gate, the auth-check endpoint and the
// subscription checks all consume its result.
type EntitlementService struct {
	subscriptions ports.SubscriptionRepository
	companies     ports.CompanyRepository
	setup         ports.SetupStatusRepository
	log           zerolog.Logger
	now           func() time.Time
}

func NewEntitlementService(
	subscriptions ports.SubscriptionRepository,
	companies ports.CompanyRepository,
	setup ports.SetupStatusRepository,
	log zerolog.Logger,
) *EntitlementService {
	return &EntitlementService{
		subscriptions: subscriptions,
		companies:     companies,
		setup:         setup,
		log:           log,
		now:           time.Now,
	}
}

// Resolve derives the entitlement of accountID. The only writes are the
// idempotent creation of the setup-status row and flipping its flags to true
// the first time a milestone is observed.
func (s *EntitlementService) Resolve(ctx context.Context, accountID string) (*domain.Entitlement, error) {
	if accountID == "" {
		return nil, domain.ErrInvalidSession
	}

	status, err := s.setup.Ensure(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve: ensure setup status: %w", err)
	}

	ent := &domain.Entitlement{AccountID: accountID, SetupStatus: *status}

	// 1. Most recent active subscription.
	sub, err := s.subscriptions.FindActive(ctx, accountID, s.now())
	switch {
	case err == nil:
		ent.Subscription = sub
		ent.HasActiveSubscription = true
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("resolve: find subscription: %w", err)
	}

	// Company is reported even when unsubscribed.
	company, err := s.companies.FindByOwner(ctx, accountID)
	switch {
	case err == nil:
		ent.Company = company
		ent.HasCompany = true
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("resolve: find company: %w", err)
	}

	if !ent.HasActiveSubscription {
		ent.NextStep = domain.StepPricing
		return ent, nil
	}

	// 2. Record the subscription milestone.
	if !ent.SetupStatus.HasCompletedSubscription {
		if err := s.setup.MarkSubscriptionComplete(ctx, accountID); err != nil {
			return nil, fmt.Errorf("resolve: mark subscription complete: %w", err)
		}
		ent.SetupStatus.HasCompletedSubscription = true
	}

	// 3. Subscribed but no office yet.
	if !ent.HasCompany {
		ent.NextStep = domain.StepSetup
		return ent, nil
	}

	// 4. First resolve after the company was created.
	if !ent.SetupStatus.HasCompletedOfficeSetup {
		if err := s.setup.MarkOfficeSetupComplete(ctx, accountID); err != nil {
			return nil, fmt.Errorf("resolve: mark office setup complete: %w", err)
		}
		ent.SetupStatus.HasCompletedOfficeSetup = true
		ent.NextStep = domain.StepSetupComplete
		s.log.Info().Str("account_id", accountID).Msg("office setup completed")
		return ent, nil
	}

	// 5.
	ent.NextStep = domain.StepDashboard
	return ent, nil
}
