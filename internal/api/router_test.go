package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/catalog"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/db/memory"
)

const testSecret = "router-test-secret"

type testApp struct {
	e       *echo.Echo
	session *memory.SessionTier
	durable *memory.SessionTier
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()
	sessionTier := memory.NewSessionTier("session")
	durableTier := memory.NewSessionTier("durable")
	store := service.NewSessionStore(sessionTier, durableTier, log)
	auth := service.NewAuthService(memory.NewAccountRepository(), store, testSecret, time.Hour, log)

	accounts := []service.SeedAccount{service.DemoAccounts[0], service.DemoAccounts[3]}
	if _, err := service.SeedAccounts(context.Background(), auth, accounts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := NewRouter(Deps{
		Log:        log,
		JWTSecret:  testSecret,
		Cookies:    middleware.CookieConfig{DeviceTTL: time.Hour},
		Tokens:     store,
		Reader:     service.NewSessionReader(store, log),
		Auth:       auth,
		Dashboards: service.NewDashboardService(catalog.NewStatic(), log),
		Registry:   prometheus.NewRegistry(),
	})
	return &testApp{e: e, session: sessionTier, durable: durableTier}
}

// browser carries cookies between requests the way a browser would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) browser() *browser {
	return &browser{app: a, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	b.app.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rec
}

// restart simulates closing and reopening the browser: browser-session
// cookies and the session tier go away, persistent cookies stay.
func (b *browser) restart() {
	delete(b.cookies, middleware.TabCookie)
	b.app.session.Reset()
}

func (b *browser) login(t *testing.T, email, password string, remember bool) {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `","remember":` + map[bool]string{true: "true", false: "false"}[remember] + `}`
	rec := b.do(http.MethodPost, "/api/v1/auth/login", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnauthenticatedRedirectsToLogin(t *testing.T) {
	b := newTestApp(t).browser()

	for _, path := range []string{"/", "/dashboard/client", "/projects"} {
		rec := b.do(http.MethodGet, path, "")
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != domain.LoginPath {
			t.Fatalf("%s: expected 303 to /login, got %d %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestRouter_LoginLandsOnRoleDashboard(t *testing.T) {
	b := newTestApp(t).browser()

	rec := b.do(http.MethodPost, "/api/v1/auth/login", `{"email":"client@steeldetailing.com","password":"client123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Redirect != "/dashboard/client" {
		t.Fatalf("unexpected redirect %q", resp.Redirect)
	}

	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard to render, got %d", rec.Code)
	}
	if rec := b.do(http.MethodGet, "/", ""); rec.Header().Get("Location") != "/dashboard/client" {
		t.Fatalf("root should send a signed-in client to their dashboard, got %q", rec.Header().Get("Location"))
	}
	if rec := b.do(http.MethodGet, "/login", ""); rec.Header().Get("Location") != "/dashboard/client" {
		t.Fatalf("login page should bounce a signed-in client, got %q", rec.Header().Get("Location"))
	}
}

func TestRouter_InvalidCredentials(t *testing.T) {
	b := newTestApp(t).browser()

	rec := b.do(http.MethodPost, "/api/v1/auth/login", `{"email":"client@steeldetailing.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("failed login must not create a session, got %d", rec.Code)
	}
}

func TestRouter_WrongRole(t *testing.T) {
	b := newTestApp(t).browser()
	b.login(t, "detailer@steeldetailing.com", "detailer123", false)

	rec := b.do(http.MethodGet, "/dashboard/client", "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != domain.LoginPath {
		t.Fatalf("dashboards redirect other roles to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if rec := b.do(http.MethodGet, "/dashboard/detailer", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected own dashboard, got %d", rec.Code)
	}
	if rec := b.do(http.MethodGet, "/projects/2", ""); rec.Code != http.StatusOK {
		t.Fatalf("project pages admit any role, got %d", rec.Code)
	}
	if rec := b.do(http.MethodGet, "/projects/42", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d", rec.Code)
	}
}

func TestRouter_RememberSurvivesRestart(t *testing.T) {
	b := newTestApp(t).browser()
	b.login(t, "client@steeldetailing.com", "client123", true)

	b.restart()

	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusOK {
		t.Fatalf("remembered login should survive a restart, got %d", rec.Code)
	}
}

func TestRouter_SessionOnlyEndsOnRestart(t *testing.T) {
	b := newTestApp(t).browser()
	b.login(t, "client@steeldetailing.com", "client123", false)

	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard before restart, got %d", rec.Code)
	}

	b.restart()

	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("session-only login must not survive a restart, got %d", rec.Code)
	}
}

func TestRouter_LogoutClearsBothTiers(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.login(t, "client@steeldetailing.com", "client123", true)

	rec := b.do(http.MethodPost, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != domain.LoginPath {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("logged out browser must be sent to login, got %d", rec.Code)
	}
	b.restart()
	if rec := b.do(http.MethodGet, "/dashboard/client", ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("durable record must be gone after logout, got %d", rec.Code)
	}
}

func TestRouter_BearerToken(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	rec := b.do(http.MethodPost, "/api/v1/auth/login", `{"email":"detailer@steeldetailing.com","password":"detailer123"}`)
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token, err=%v body=%s", err, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out := httptest.NewRecorder()
	app.e.ServeHTTP(out, req)
	if out.Code != http.StatusOK || !strings.Contains(out.Body.String(), "/dashboard/detailer") {
		t.Fatalf("expected session view, got %d %s", out.Code, out.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard/client", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out = httptest.NewRecorder()
	app.e.ServeHTTP(out, req)
	if out.Code != http.StatusForbidden {
		t.Fatalf("API clients get 403 for the wrong role, got %d", out.Code)
	}
}

func TestRouter_BearerLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	rec := b.do(http.MethodPost, "/api/v1/auth/login", `{"email":"client@steeldetailing.com","password":"client123"}`)
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected a token, err=%v body=%s", err, rec.Body.String())
	}

	withToken := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		out := httptest.NewRecorder()
		app.e.ServeHTTP(out, req)
		return out
	}

	if out := withToken(http.MethodGet, "/dashboard/client"); out.Code != http.StatusOK {
		t.Fatalf("expected dashboard before logout, got %d", out.Code)
	}
	if out := withToken(http.MethodPost, "/api/v1/auth/logout"); out.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 from logout, got %d %s", out.Code, out.Body.String())
	}
	if out := withToken(http.MethodGet, "/dashboard/client"); out.Code != http.StatusUnauthorized {
		t.Fatalf("token must be rejected after logout, got %d", out.Code)
	}
	if out := withToken(http.MethodGet, "/api/v1/session"); out.Code != http.StatusUnauthorized {
		t.Fatalf("session endpoint must reject a revoked token, got %d", out.Code)
	}
}

func TestRouter_SessionEndpointRequiresLogin(t *testing.T) {
	b := newTestApp(t).browser()

	if rec := b.do(http.MethodGet, "/api/v1/session", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	b := newTestApp(t).browser()

	if rec := b.do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := b.do(http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with in-memory tiers, got %d", rec.Code)
	}
}
