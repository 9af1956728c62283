package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

func validCheckout(accountID string, cycle domain.BillingCycle) ports.CreateSubscriptionInput {
	return ports.CreateSubscriptionInput{
		AccountID:     accountID,
		PlanID:        "pro",
		PlanName:      "Professional",
		BillingCycle:  cycle,
		PaymentMethod: "card",
		PaymentID:     "pay_123",
	}
}

func TestSubscriptionService_Create_ComputesEndDate(t *testing.T) {
	start := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		cycle domain.BillingCycle
		want  time.Time
	}{
		{domain.BillingMonthly, start.AddDate(0, 1, 0)},
		{domain.BillingYearly, start.AddDate(1, 0, 0)},
	}

	for _, tc := range cases {
		t.Run(string(tc.cycle), func(t *testing.T) {
			svc := NewSubscriptionService(&stubSubscriptionRepo{}, newStubSetupRepo(), zerolog.Nop())
			svc.now = fixedClock(start)

			sub, err := svc.Create(context.Background(), validCheckout("acc-1", tc.cycle))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if sub.Status != domain.SubscriptionActive {
				t.Fatalf("expected active, got %s", sub.Status)
			}
			if sub.EndDate == nil || !sub.EndDate.Equal(tc.want) {
				t.Fatalf("expected end %s, got %v", tc.want, sub.EndDate)
			}
		})
	}
}

func TestSubscriptionService_Create_MarksSetupStatus(t *testing.T) {
	setup := newStubSetupRepo()
	svc := NewSubscriptionService(&stubSubscriptionRepo{}, setup, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validCheckout("acc-1", domain.BillingMonthly)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !setup.rows["acc-1"].HasCompletedSubscription {
		t.Fatalf("expected subscription milestone to be marked")
	}
}

func TestSubscriptionService_Create_SetupFailureIsNotFatal(t *testing.T) {
	setup := newStubSetupRepo()
	setup.markErr = errors.New("locked")
	svc := NewSubscriptionService(&stubSubscriptionRepo{}, setup, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validCheckout("acc-1", domain.BillingYearly)); err != nil {
		t.Fatalf("expected success despite setup error, got %v", err)
	}
}

func TestSubscriptionService_Create_Validation(t *testing.T) {
	svc := NewSubscriptionService(&stubSubscriptionRepo{}, newStubSetupRepo(), zerolog.Nop())

	in := validCheckout("acc-1", "weekly")
	in.PlanID = ""
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	want := "plan id is required; billing cycle must be monthly or yearly"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestSubscriptionService_Create_Concurrent(t *testing.T) {
	subs := &stubSubscriptionRepo{}
	setup := newStubSetupRepo()
	svc := NewSubscriptionService(subs, setup, zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), validCheckout("acc-1", domain.BillingMonthly))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}
	if len(setup.rows) != 1 {
		t.Fatalf("expected exactly one setup row, got %d", len(setup.rows))
	}
}

func TestSubscriptionService_Overview(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	subs := &stubSubscriptionRepo{}
	svc := NewSubscriptionService(subs, newStubSetupRepo(), zerolog.Nop())
	svc.now = fixedClock(now)

	expired := now.Add(-time.Hour)
	_ = subs.Create(context.Background(), &domain.Subscription{ID: "old", AccountID: "acc-1", Status: domain.SubscriptionActive, EndDate: &expired, CreatedAt: now.Add(-40 * 24 * time.Hour)})

	overview, err := svc.Overview(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Subscriptions) != 1 || overview.Active != nil {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	if _, err := svc.RequireActive(context.Background(), "acc-1"); !errors.Is(err, domain.ErrSubscriptionRequired) {
		t.Fatalf("expected ErrSubscriptionRequired, got %v", err)
	}
}
