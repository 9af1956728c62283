package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/core/ports"
)

// Session requires a valid session cookie and injects its claims into the
// context. Failures surface as domain.ErrInvalidSession (401).
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := SessionFromCookie(c, auth)
			if err != nil {
				return err
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}
