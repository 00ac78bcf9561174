package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/api/metrics"
	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     middleware.CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Login authenticates the caller and binds the identity to its client keys.
//
// @Summary      Login
// @Description  On success the identity is saved for this browser session, and also for the device when remember is set.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), middleware.KeysFrom(c), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials", "").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error", "").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success", res.Identity.Role.String()).Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Identity: toIdentityResponse(res.Identity),
		Redirect: res.LandingPath,
		Token:    res.Token,
	})
}

// Logout clears the identity from both tiers, revokes the bearer token the
// request carried, and sends the browser to the login page.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.KeysFrom(c)); err != nil {
		return err
	}

	middleware.ExpireTab(c, h.cookies)
	metrics.LogoutsTotal.Inc()
	return c.Redirect(http.StatusSeeOther, domain.LoginPath)
}
