package domain

import "time"

// SetupStatus caches the onboarding milestones reached by an account. The
// subscription and company records remain the source of truth.
type SetupStatus struct {
	AccountID                string    `json:"-"`
	HasCompletedSubscription bool      `json:"has_completed_subscription"`
	HasCompletedOfficeSetup  bool      `json:"has_completed_office_setup"`
	CreatedAt                time.Time `json:"-"`
	UpdatedAt                time.Time `json:"-"`
}
