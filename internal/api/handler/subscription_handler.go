package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type createSubscriptionRequest struct {
	PlanID        string `json:"planId"`
	PlanName      string `json:"planName"`
	BillingCycle  string `json:"billingCycle"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentID     string `json:"paymentId"`
}

type createSubscriptionResponse struct {
	Subscription *domain.Subscription `json:"subscription"`
	Message      string               `json:"message"`
}

type listSubscriptionsResponse struct {
	Subscriptions         []*domain.Subscription `json:"subscriptions"`
	ActiveSubscription    *domain.Subscription   `json:"activeSubscription"`
	HasActiveSubscription bool                   `json:"hasActiveSubscription"`
}

// Create records a checkout after simulated payment.
//
// @Summary      Create a subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      createSubscriptionRequest  true  "Plan and payment details"
// @Success      201   {object}  createSubscriptionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createSubscriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sub, err := h.service.Create(c.Request().Context(), ports.CreateSubscriptionInput{
		AccountID:     claims.AccountID,
		PlanID:        req.PlanID,
		PlanName:      req.PlanName,
		BillingCycle:  domain.BillingCycle(req.BillingCycle),
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
	})
	if err != nil {
		return err
	}

	metrics.SubscriptionsCreatedTotal.WithLabelValues(string(sub.BillingCycle)).Inc()
	return c.JSON(http.StatusCreated, createSubscriptionResponse{
		Subscription: sub,
		Message:      "subscription created successfully",
	})
}

// List returns the subscription history of the signed-in account.
//
// @Summary      List subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  listSubscriptionsResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/subscriptions [get]
func (h *SubscriptionHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	overview, err := h.service.Overview(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}

	subs := overview.Subscriptions
	if subs == nil {
		subs = []*domain.Subscription{}
	}
	return c.JSON(http.StatusOK, listSubscriptionsResponse{
		Subscriptions:         subs,
		ActiveSubscription:    overview.Active,
		HasActiveSubscription: overview.Active != nil,
	})
}
