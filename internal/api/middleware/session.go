package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/api/metrics"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
)

// Session performs the request's single session load and exposes the result
// via ViewFrom. A view already set by Auth is kept. Must run after
// ClientKeys.
func Session(reader *service.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(ctxView).(domain.SessionView); !ok {
				c.Set(ctxView, reader.Read(c.Request().Context(), KeysFrom(c)))
			}

			result := "anonymous"
			if ViewFrom(c).Identity != nil {
				result = "identity"
			}
			metrics.SessionReadsTotal.WithLabelValues(result).Inc()

			return next(c)
		}
	}
}

// ViewFrom returns the session view for the request. Before Session has run
// it reports a pending load.
func ViewFrom(c echo.Context) domain.SessionView {
	if v, ok := c.Get(ctxView).(domain.SessionView); ok {
		return v
	}
	return domain.SessionView{IsLoading: true}
}
