package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/domain"
)

// ctxClaims returns the session injected by the Session middleware. Its
// absence means the route was registered without the middleware.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims := middleware.Claims(c)
	if claims == nil || claims.AccountID == "" {
		return nil, domain.ErrInvalidSession
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

type messageResponse struct {
	Message string `json:"message"`
}

// accountView is the public projection of an account.
type accountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func viewAccount(a *domain.Account) *accountView {
	return &accountView{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}
