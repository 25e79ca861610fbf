package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PagesHandler serves the pages Stripe redirects the customer to
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) Success(c echo.Context) error {
	return c.Render(http.StatusOK, "success.html", nil)
}

func (h *PagesHandler) Cancel(c echo.Context) error {
	return c.Render(http.StatusOK, "cancel.html", nil)
}
