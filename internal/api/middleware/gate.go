package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/api/metrics"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/gate"
)

// RoleGate guards a page. The handler runs only for an Authorized visit;
// every other outcome is answered here according to page.Policy.
func RoleGate(page gate.Page) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			view := ViewFrom(c)
			state, action := page.Check(view)
			metrics.GateDecisionsTotal.WithLabelValues(state.String(), page.Policy.String()).Inc()

			switch action {
			case gate.Render:
				return next(c)
			case gate.Wait:
				// The load never finished for this request; decide nothing.
				return c.NoContent(http.StatusServiceUnavailable)
			case gate.Notice:
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": gate.DeniedMessage(view.Identity.Role),
				})
			default:
				if wantsJSON(c) {
					if state == gate.Forbidden {
						return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error()).SetInternal(domain.ErrForbidden)
					}
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error()).SetInternal(domain.ErrUnauthenticated)
				}
				return c.Redirect(http.StatusSeeOther, domain.LoginPath)
			}
		}
	}
}

// wantsJSON reports whether the caller is an API client rather than a browser
// navigation.
func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.URL.Path, "/api/") ||
		req.Header.Get("Authorization") != "" ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
