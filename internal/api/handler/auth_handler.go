package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	resolver    ports.EntitlementService
	cookie      middleware.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, resolver ports.EntitlementService, cookie middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, resolver: resolver, cookie: cookie}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signupResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User    *accountView `json:"user"`
	Message string       `json:"message"`
}

type checkResponse struct {
	Authenticated         bool                 `json:"authenticated"`
	User                  *accountView         `json:"user"`
	Subscription          *domain.Subscription `json:"subscription"`
	HasActiveSubscription bool                 `json:"hasActiveSubscription"`
	SetupStatus           domain.SetupStatus   `json:"setupStatus"`
	HasCompany            bool                 `json:"hasCompany"`
	NextStep              domain.NextStep      `json:"nextStep"`
}

type anonymousCheckResponse struct {
	Authenticated bool            `json:"authenticated"`
	NextStep      domain.NextStep `json:"nextStep"`
}

// Signup creates a new account.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateAccount):
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		case errors.Is(err, domain.ErrValidation):
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		ID:      account.ID,
		Email:   account.Email,
		Name:    account.Name,
		Message: "account created successfully",
	})
}

// Login authenticates an account and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, account, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	middleware.SetSessionCookie(c, h.cookie, token)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{User: viewAccount(account), Message: "login successful"})
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookie)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Check reports the session and onboarding state of the caller. Anonymous
// callers get a 200 with authenticated=false.
//
// @Summary      Session and onboarding state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  checkResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	claims, err := middleware.SessionFromCookie(c, h.authService)
	if err != nil {
		return c.JSON(http.StatusOK, anonymousCheckResponse{Authenticated: false, NextStep: domain.StepLogin})
	}

	ent, err := h.resolver.Resolve(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkResponse{
		Authenticated: true,
		User: &accountView{
			ID:    claims.AccountID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		},
		Subscription:          ent.Subscription,
		HasActiveSubscription: ent.HasActiveSubscription,
		SetupStatus:           ent.SetupStatus,
		HasCompany:            ent.HasCompany,
		NextStep:              ent.NextStep,
	})
}
