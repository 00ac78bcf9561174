package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

const (
	// TabCookie is a browser-session cookie: it has no expiry, so the
	// browser drops it on restart along with the session-scoped record.
	TabCookie = "sd_tab"
	// DeviceCookie outlives restarts and keys the durable record.
	DeviceCookie = "sd_device"

	ctxKeys = "client_keys"
	ctxView = "session_view"
)

// CookieConfig controls the client key cookies.
type CookieConfig struct {
	DeviceTTL time.Duration
	Secure    bool
}

// ClientKeys makes sure the request carries both client key cookies, issuing
// fresh random keys when they are missing, and exposes them via KeysFrom.
func ClientKeys(cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			keys := ports.ClientKeys{
				Tab:    ensureCookie(c, TabCookie, 0, cfg.Secure),
				Device: ensureCookie(c, DeviceCookie, cfg.DeviceTTL, cfg.Secure),
			}
			c.Set(ctxKeys, keys)
			return next(c)
		}
	}
}

// KeysFrom returns the client keys installed by ClientKeys.
func KeysFrom(c echo.Context) ports.ClientKeys {
	keys, _ := c.Get(ctxKeys).(ports.ClientKeys)
	return keys
}

// ExpireTab tells the browser to drop its tab key. The next request gets a
// new one.
func ExpireTab(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     TabCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ensureCookie(c echo.Context, name string, ttl time.Duration, secure bool) string {
	if ck, err := c.Cookie(name); err == nil {
		if _, err := uuid.Parse(ck.Value); err == nil {
			return ck.Value
		}
	}

	value := uuid.NewString()
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		ck.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(ck)
	return value
}
