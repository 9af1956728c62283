package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type NewsletterHandler struct {
	service ports.NewsletterService
}

func NewNewsletterHandler(service ports.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

type subscribeNewsletterRequest struct {
	Email string `json:"email"`
}

type listNewsletterResponse struct {
	Subscribers []*domain.NewsletterSubscriber `json:"subscribers"`
	Count       int                            `json:"count"`
}

// Subscribe adds an address to the newsletter. Subscribing twice is not an error.
//
// @Summary      Subscribe to the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body  body      subscribeNewsletterRequest  true  "Email address"
// @Success      200   {object}  messageResponse
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/newsletter [post]
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeNewsletterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	added, err := h.service.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	if !added {
		return c.JSON(http.StatusOK, messageResponse{Message: "already subscribed"})
	}
	metrics.NewsletterSignupsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "subscribed successfully"})
}

// List returns every newsletter subscriber. Admin only.
//
// @Summary      List newsletter subscribers
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listNewsletterResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/newsletter [get]
func (h *NewsletterHandler) List(c echo.Context) error {
	subs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.NewsletterSubscriber{}
	}
	return c.JSON(http.StatusOK, listNewsletterResponse{Subscribers: subs, Count: len(subs)})
}
