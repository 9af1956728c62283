package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/core/domain"
)

const (
	ctxKeyClaims      = "session_claims"
	ctxKeyEntitlement = "entitlement"
	ctxKeyRole        = "role"
)

// Claims returns the session injected by Session or Gate, or nil.
func Claims(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(ctxKeyClaims).(*domain.SessionClaims)
	return claims
}

// Entitlement returns the onboarding state resolved by Gate or
// RequireSubscription, or nil.
func Entitlement(c echo.Context) *domain.Entitlement {
	ent, _ := c.Get(ctxKeyEntitlement).(*domain.Entitlement)
	return ent
}

func setClaims(c echo.Context, claims *domain.SessionClaims) {
	c.Set(ctxKeyClaims, claims)
	c.Set(ctxKeyRole, claims.Role)
}

func setEntitlement(c echo.Context, ent *domain.Entitlement) {
	c.Set(ctxKeyEntitlement, ent)
}
