package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/ports"
)

type ProfileHandler struct {
	authService ports.AuthService
	cookie      middleware.CookieConfig
}

func NewProfileHandler(authService ports.AuthService, cookie middleware.CookieConfig) *ProfileHandler {
	return &ProfileHandler{authService: authService, cookie: cookie}
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

type profileResponse struct {
	User    *accountView `json:"user"`
	Message string       `json:"message"`
}

// Update changes the display name of the signed-in account and replaces the
// session cookie so the new name shows up in later checks.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "New profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/users/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.UpdateProfile(c.Request().Context(), claims.AccountID, req.Name)
	if err != nil {
		return err
	}

	token, err := h.authService.IssueSession(account)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, h.cookie, token)

	return c.JSON(http.StatusOK, profileResponse{User: viewAccount(account), Message: "profile updated"})
}
