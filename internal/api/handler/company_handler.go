package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type CompanyHandler struct {
	companies     ports.CompanyService
	subscriptions ports.SubscriptionService
}

func NewCompanyHandler(companies ports.CompanyService, subscriptions ports.SubscriptionService) *CompanyHandler {
	return &CompanyHandler{companies: companies, subscriptions: subscriptions}
}

type saveCompanyRequest struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Size    string `json:"size"`
	LogoURL string `json:"logoUrl"`
}

type saveCompanyResponse struct {
	Company *domain.Company `json:"company"`
	Message string          `json:"message"`
}

type getCompanyResponse struct {
	Company               *domain.Company `json:"company"`
	HasActiveSubscription bool            `json:"hasActiveSubscription"`
}

// Save creates or updates the company of the signed-in account.
//
// @Summary      Save company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      saveCompanyRequest  true  "Company details"
// @Success      200   {object}  saveCompanyResponse
// @Success      201   {object}  saveCompanyResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]any
// @Router       /api/companies [post]
func (h *CompanyHandler) Save(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req saveCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, created, err := h.companies.Save(c.Request().Context(), ports.SaveCompanyInput{
		OwnerID: claims.AccountID,
		Name:    req.Name,
		Website: req.Website,
		Size:    req.Size,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		return err
	}

	if created {
		metrics.CompaniesSavedTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, saveCompanyResponse{Company: company, Message: "company created successfully"})
	}
	metrics.CompaniesSavedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, saveCompanyResponse{Company: company, Message: "company updated successfully"})
}

// Get returns the company of the signed-in account, or null.
//
// @Summary      Get company
// @Tags         companies
// @Produce      json
// @Success      200  {object}  getCompanyResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/companies [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	company, err := h.companies.Get(ctx, claims.AccountID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	active := true
	if _, err := h.subscriptions.RequireActive(ctx, claims.AccountID); err != nil {
		if !errors.Is(err, domain.ErrSubscriptionRequired) {
			return err
		}
		active = false
	}

	return c.JSON(http.StatusOK, getCompanyResponse{Company: company, HasActiveSubscription: active})
}

// Delete removes the company when the caller owns it.
//
// @Summary      Delete company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.companies.Delete(c.Request().Context(), claims.AccountID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "company deleted successfully"})
}
