package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	// Secure is false only in development, where the app runs over plain http.
	Secure bool
	MaxAge time.Duration
}

// SetSessionCookie writes token as an HttpOnly, SameSite=Strict cookie.
func SetSessionCookie(c echo.Context, cfg CookieConfig, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SessionFromCookie verifies the session cookie of the request. A missing
// cookie and a bad token both yield domain.ErrInvalidSession.
func SessionFromCookie(c echo.Context, auth ports.AuthService) (*domain.SessionClaims, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrInvalidSession
	}
	return auth.VerifySession(cookie.Value)
}
