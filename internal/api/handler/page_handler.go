package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/api/middleware"
	"github.com/teamify/office-api/internal/core/domain"
)

// GatedPages are the page routes behind the access gate. The public ones are
// middleware.PublicPages.
var GatedPages = []string{"/pricing", "/checkout", "/setup", "/confirmation", "/dashboard"}

// PageHandler serves page routes as <webRoot>/<page>.html. Without a web root
// it answers with a JSON description of the page, which is enough for the
// frontend dev server and for probing the gate.
type PageHandler struct {
	webRoot string
}

func NewPageHandler(webRoot string) *PageHandler {
	return &PageHandler{webRoot: webRoot}
}

type pageResponse struct {
	Page     string          `json:"page"`
	NextStep domain.NextStep `json:"nextStep,omitempty"`
}

func (h *PageHandler) Serve(c echo.Context) error {
	page := c.Path()

	if h.webRoot == "" {
		resp := pageResponse{Page: page}
		if ent := middleware.Entitlement(c); ent != nil {
			resp.NextStep = ent.NextStep
		}
		return c.JSON(http.StatusOK, resp)
	}

	file := filepath.Join(h.webRoot, pageFile(page))
	if _, err := os.Stat(file); err != nil {
		return echo.ErrNotFound
	}
	return c.File(file)
}

// pageFile maps a registered route to its HTML file. Routes are fixed at
// registration, so the name never comes from user input.
func pageFile(route string) string {
	if route == "/" {
		return "index.html"
	}
	return strings.TrimPrefix(route, "/") + ".html"
}
