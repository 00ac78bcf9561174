package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestClientKeys_IssuesCookies(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var keysSeen bool
	h := ClientKeys(CookieConfig{DeviceTTL: 48 * time.Hour})(func(c echo.Context) error {
		keys := KeysFrom(c)
		if _, err := uuid.Parse(keys.Tab); err != nil {
			t.Fatalf("tab key is not a uuid: %q", keys.Tab)
		}
		if _, err := uuid.Parse(keys.Device); err != nil {
			t.Fatalf("device key is not a uuid: %q", keys.Device)
		}
		if keys.Tab == keys.Device {
			t.Fatalf("tab and device keys must differ")
		}
		keysSeen = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !keysSeen {
		t.Fatalf("next not called")
	}

	tab := cookieNamed(rec, TabCookie)
	if tab == nil || tab.MaxAge != 0 || !tab.Expires.IsZero() || !tab.HttpOnly {
		t.Fatalf("tab cookie must be an HttpOnly browser-session cookie, got %+v", tab)
	}
	device := cookieNamed(rec, DeviceCookie)
	if device == nil || device.MaxAge != int((48*time.Hour).Seconds()) || !device.HttpOnly {
		t.Fatalf("device cookie must persist, got %+v", device)
	}
}

func TestClientKeys_ReusesValidCookies(t *testing.T) {
	tab, device := uuid.NewString(), uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TabCookie, Value: tab})
	req.AddCookie(&http.Cookie{Name: DeviceCookie, Value: device})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ClientKeys(CookieConfig{DeviceTTL: time.Hour})(func(c echo.Context) error {
		keys := KeysFrom(c)
		if keys.Tab != tab || keys.Device != device {
			t.Fatalf("expected existing keys, got %+v", keys)
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookies should be reissued")
	}
}

func TestClientKeys_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TabCookie, Value: "user:../../admin"})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ClientKeys(CookieConfig{})(func(c echo.Context) error {
		if KeysFrom(c).Tab == "user:../../admin" {
			t.Fatalf("malformed key must not be used")
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cookieNamed(rec, TabCookie) == nil {
		t.Fatalf("expected a fresh tab cookie")
	}
}
