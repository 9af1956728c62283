package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// RequireSubscription rejects accounts without an active subscription with
// domain.ErrSubscriptionRequired. It must run after Session.
func RequireSubscription(resolver ports.EntitlementService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return domain.ErrInvalidSession
			}

			ent, err := resolver.Resolve(c.Request().Context(), claims.AccountID)
			if err != nil {
				return err
			}
			if !ent.HasActiveSubscription {
				return domain.ErrSubscriptionRequired
			}

			setEntitlement(c, ent)
			return next(c)
		}
	}
}
