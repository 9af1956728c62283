// Package metrics defines and registers all custom Prometheus metrics for the
// office API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry on import;
// HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "office"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "duplicate" or "rejected"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset requests and redemptions.
// Label:
//   - stage: "requested", "completed" or "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and redemptions.",
	},
	[]string{"stage"},
)

// ── Onboarding metrics ────────────────────────────────────────────────────────

// GateDecisionsTotal counts access gate outcomes on page routes.
// Label:
//   - decision: "allow", "redirect", "login" (no session) or "error" (resolver failed)
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by outcome.",
	},
	[]string{"decision"},
)

// EntitlementResolveDuration measures entitlement resolution in the gate.
// Label:
//   - next_step: the resolved onboarding step
var EntitlementResolveDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "entitlement_resolve_duration_seconds",
		Help:      "Duration of entitlement resolution, by resolved step.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"next_step"},
)

// SubscriptionsCreatedTotal counts checkouts.
// Label:
//   - billing_cycle: "monthly" or "yearly"
var SubscriptionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_created_total",
		Help:      "Total number of subscriptions created, by billing cycle.",
	},
	[]string{"billing_cycle"},
)

// CompaniesSavedTotal counts company-setup submissions.
// Label:
//   - result: "created" or "updated"
var CompaniesSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "companies_saved_total",
		Help:      "Total number of company setup submissions, by result.",
	},
	[]string{"result"},
)

// NewsletterSignupsTotal counts newsletter subscriptions that added a new address.
var NewsletterSignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_signups_total",
		Help:      "Total number of new newsletter subscribers.",
	},
)
