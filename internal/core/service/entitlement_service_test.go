package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
)

var resolveNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type entitlementFixture struct {
	subs     *stubSubscriptionRepo
	cos      *stubCompanyRepo
	setup    *stubSetupRepo
	resolver *EntitlementService
}

func newEntitlementFixture() *entitlementFixture {
	f := &entitlementFixture{
		subs:  &stubSubscriptionRepo{},
		cos:   newStubCompanyRepo(),
		setup: newStubSetupRepo(),
	}
	f.resolver = NewEntitlementService(f.subs, f.cos, f.setup, zerolog.Nop())
	f.resolver.now = fixedClock(resolveNow)
	return f
}

func (f *entitlementFixture) subscribe(accountID string, end *time.Time, created time.Time) {
	_ = f.subs.Create(context.Background(), &domain.Subscription{
		ID:           accountID + "-" + created.String(),
		AccountID:    accountID,
		PlanID:       "pro",
		BillingCycle: domain.BillingMonthly,
		Status:       domain.SubscriptionActive,
		StartDate:    created,
		EndDate:      end,
		CreatedAt:    created,
	})
}

func (f *entitlementFixture) addCompany(ownerID string) {
	_, _ = f.cos.Upsert(context.Background(), &domain.Company{ID: "co-" + ownerID, OwnerID: ownerID, Name: "Acme", Size: "1-10"})
}

func ptr(t time.Time) *time.Time { return &t }

func TestResolve_NewAccountGoesToPricing(t *testing.T) {
	f := newEntitlementFixture()

	ent, err := f.resolver.Resolve(context.Background(), "acc-a")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepPricing {
		t.Fatalf("expected pricing, got %s", ent.NextStep)
	}
	if ent.HasActiveSubscription || ent.HasCompany {
		t.Fatalf("unexpected entitlement: %+v", ent)
	}
	if _, ok := f.setup.rows["acc-a"]; !ok {
		t.Fatalf("expected setup status row to be created lazily")
	}
}

func TestResolve_SubscribedWithoutCompanyGoesToSetup(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-b", ptr(resolveNow.Add(30*24*time.Hour)), resolveNow.Add(-time.Hour))

	ent, err := f.resolver.Resolve(context.Background(), "acc-b")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepSetup {
		t.Fatalf("expected setup, got %s", ent.NextStep)
	}
	if !ent.SetupStatus.HasCompletedSubscription || !f.setup.rows["acc-b"].HasCompletedSubscription {
		t.Fatalf("expected subscription milestone to be persisted")
	}
}

func TestResolve_FirstResolveAfterCompanyCompletesSetup(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-c", ptr(resolveNow.Add(24*time.Hour)), resolveNow.Add(-time.Hour))
	f.addCompany("acc-c")

	ent, err := f.resolver.Resolve(context.Background(), "acc-c")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepSetupComplete {
		t.Fatalf("expected setup_complete, got %s", ent.NextStep)
	}

	ent, err = f.resolver.Resolve(context.Background(), "acc-c")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepDashboard {
		t.Fatalf("expected dashboard on second resolve, got %s", ent.NextStep)
	}
}

func TestResolve_FullyOnboardedGoesToDashboard(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-d", nil, resolveNow.Add(-time.Hour))
	f.addCompany("acc-d")
	f.setup.rows["acc-d"] = &domain.SetupStatus{AccountID: "acc-d", HasCompletedSubscription: true, HasCompletedOfficeSetup: true}

	ent, err := f.resolver.Resolve(context.Background(), "acc-d")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepDashboard {
		t.Fatalf("expected dashboard, got %s", ent.NextStep)
	}
}

func TestResolve_IsIdempotent(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-e", ptr(resolveNow.Add(time.Hour)), resolveNow.Add(-time.Hour))
	f.addCompany("acc-e")
	f.setup.rows["acc-e"] = &domain.SetupStatus{AccountID: "acc-e", HasCompletedSubscription: true, HasCompletedOfficeSetup: true}

	for i := 0; i < 3; i++ {
		ent, err := f.resolver.Resolve(context.Background(), "acc-e")
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if ent.NextStep != domain.StepDashboard {
			t.Fatalf("resolve %d: expected dashboard, got %s", i, ent.NextStep)
		}
	}
	if f.setup.markSubs != 0 || f.setup.markOffice != 0 {
		t.Fatalf("flags re-flipped: subs=%d office=%d", f.setup.markSubs, f.setup.markOffice)
	}
}

func TestResolve_NoSubscriptionShortCircuitsCompany(t *testing.T) {
	f := newEntitlementFixture()
	f.addCompany("acc-f")

	ent, err := f.resolver.Resolve(context.Background(), "acc-f")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.NextStep != domain.StepPricing {
		t.Fatalf("expected pricing, got %s", ent.NextStep)
	}
	if !ent.HasCompany {
		t.Fatalf("expected company to be reported")
	}
	if f.setup.markSubs != 0 || f.setup.markOffice != 0 {
		t.Fatalf("no flag should flip without a subscription")
	}
}

func TestResolve_EndDateBoundary(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-g", ptr(resolveNow), resolveNow.Add(-time.Hour))

	ent, err := f.resolver.Resolve(context.Background(), "acc-g")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.HasActiveSubscription || ent.NextStep != domain.StepPricing {
		t.Fatalf("subscription ending exactly now must be inactive: %+v", ent)
	}
}

func TestResolve_MostRecentActiveSubscriptionWins(t *testing.T) {
	f := newEntitlementFixture()
	f.subscribe("acc-h", ptr(resolveNow.Add(time.Hour)), resolveNow.Add(-48*time.Hour))
	f.subscribe("acc-h", ptr(resolveNow.Add(365*24*time.Hour)), resolveNow.Add(-time.Hour))

	ent, err := f.resolver.Resolve(context.Background(), "acc-h")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ent.Subscription.CreatedAt.Equal(resolveNow.Add(-time.Hour)) {
		t.Fatalf("expected newest subscription, got created %s", ent.Subscription.CreatedAt)
	}
}

func TestResolve_RepositoryErrorPropagates(t *testing.T) {
	f := newEntitlementFixture()
	boom := errors.New("db down")
	f.subs.findErr = boom

	if _, err := f.resolver.Resolve(context.Background(), "acc-i"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestResolve_EmptyAccount(t *testing.T) {
	f := newEntitlementFixture()
	if _, err := f.resolver.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
