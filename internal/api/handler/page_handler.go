package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// PageHandler serves the unprotected entry points.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Root sends the visitor to their landing page, or to login when there is no
// session.
func (h *PageHandler) Root(c echo.Context) error {
	if id := middleware.ViewFrom(c).Identity; id != nil {
		return c.Redirect(http.StatusSeeOther, id.Role.LandingPath())
	}
	return c.Redirect(http.StatusSeeOther, domain.LoginPath)
}

// Login describes the login form. A visitor who is already signed in goes
// straight to their landing page.
func (h *PageHandler) Login(c echo.Context) error {
	if id := middleware.ViewFrom(c).Identity; id != nil {
		return c.Redirect(http.StatusSeeOther, id.Role.LandingPath())
	}
	return c.JSON(http.StatusOK, loginPageResponse{
		Action: "/api/v1/auth/login",
		Fields: []string{"email", "password", "remember"},
	})
}
