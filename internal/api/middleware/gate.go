package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// PublicPages are the page routes reachable without a session.
var PublicPages = []string{"/", "/about", "/contact", "/features", "/login", "/signup", "/forgot-password", "/reset-password"}

var publicPageSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(PublicPages))
	for _, p := range PublicPages {
		set[p] = struct{}{}
	}
	return set
}()

// Prefixes that are never page routes. API routes carry their own
// session and subscription checks.
var bypassPrefixes = []string{"/api/", "/health", "/metrics", "/swagger/"}

// GateConfig wires the access gate.
type GateConfig struct {
	Auth     ports.AuthService
	Resolver ports.EntitlementService
	Log      zerolog.Logger
}

// Gate guards page routes according to the account's onboarding step.
// Anonymous visitors and resolver failures are sent to the login page with a
// returnUrl; signed-in visitors are kept on the pages their step allows.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if isBypassed(path) {
				return next(c)
			}

			claims, err := SessionFromCookie(c, cfg.Auth)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues("login").Inc()
				return c.Redirect(http.StatusFound, loginRedirect(c.Request().URL))
			}
			setClaims(c, claims)

			start := time.Now()
			ent, err := cfg.Resolver.Resolve(c.Request().Context(), claims.AccountID)
			if err != nil {
				cfg.Log.Error().Err(err).Str("path", path).Msg("entitlement resolution failed")
				metrics.GateDecisionsTotal.WithLabelValues("error").Inc()
				return c.Redirect(http.StatusFound, loginRedirect(c.Request().URL))
			}
			metrics.EntitlementResolveDuration.WithLabelValues(string(ent.NextStep)).Observe(time.Since(start).Seconds())

			if target := redirectFor(ent, path); target != "" {
				metrics.GateDecisionsTotal.WithLabelValues("redirect").Inc()
				return c.Redirect(http.StatusFound, target)
			}

			metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
			setEntitlement(c, ent)
			return next(c)
		}
	}
}

func isBypassed(path string) bool {
	if _, ok := publicPageSet[path]; ok {
		return true
	}
	for _, p := range bypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// redirectFor returns where a signed-in account must go instead of path, or
// "" when path is allowed for its step.
func redirectFor(ent *domain.Entitlement, path string) string {
	if path == "/dashboard" && !ent.HasActiveSubscription {
		return "/pricing"
	}

	switch ent.NextStep {
	case domain.StepPricing:
		if path == "/pricing" || path == "/checkout" {
			return ""
		}
		return "/pricing"
	case domain.StepSetup:
		if path == "/setup" || path == "/confirmation" {
			return ""
		}
		return "/setup"
	default:
		if path == "/setup" {
			return "/dashboard"
		}
		return ""
	}
}

func loginRedirect(u *url.URL) string {
	target := u.Path
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return "/login?returnUrl=" + url.QueryEscape(target)
}
