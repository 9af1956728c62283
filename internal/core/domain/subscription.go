package domain

import "time"

// BillingCycle is how often a subscription renews.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Valid reports whether c is a supported billing cycle.
func (c BillingCycle) Valid() bool {
	return c == BillingMonthly || c == BillingYearly
}

// EndDate returns the end of a period of this cycle starting at start.
// Unknown cycles are treated as monthly.
func (c BillingCycle) EndDate(start time.Time) time.Time {
	if c == BillingYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

// Subscription is one paid plan period of an account. An account keeps its
// whole subscription history; the most recent active row is authoritative.
type Subscription struct {
	ID            string       `json:"id"`
	AccountID     string       `json:"account_id"`
	PlanID        string       `json:"plan_id"`
	PlanName      string       `json:"plan_name"`
	BillingCycle  BillingCycle `json:"billing_cycle"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	PaymentID     string       `json:"payment_id,omitempty"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       *time.Time   `json:"end_date"`
	CreatedAt     time.Time    `json:"created_at"`
}

// IsActive reports whether the subscription grants access at now. The end
// date is exclusive: a subscription ending exactly at now is already over.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil || s.Status != SubscriptionActive {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(now)
}
