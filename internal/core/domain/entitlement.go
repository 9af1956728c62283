package domain

// NextStep is the onboarding stage an account has to reach next.
type NextStep string

const (
	StepLogin         NextStep = "login"
	StepPricing       NextStep = "pricing"
	StepSetup         NextStep = "setup"
	StepSetupComplete NextStep = "setup_complete"
	StepDashboard     NextStep = "dashboard"
)

// Entitlement is everything derived about an account's onboarding state.
type Entitlement struct {
	AccountID             string
	Subscription          *Subscription
	HasActiveSubscription bool
	Company               *Company
	HasCompany            bool
	SetupStatus           SetupStatus
	NextStep              NextStep
}
