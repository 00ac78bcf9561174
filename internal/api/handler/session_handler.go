package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current returns the identity loaded for this request.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	view := middleware.ViewFrom(c)
	if view.Identity == nil {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Identity:    toIdentityResponse(view.Identity),
		LandingPath: view.Identity.Role.LandingPath(),
	})
}
