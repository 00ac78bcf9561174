package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/steeldetailing/pm-dashboard/docs"
	"github.com/steeldetailing/pm-dashboard/internal/api/handler"
	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/gate"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers. Mongo and Redis
// are nil when the matching tier runs in memory. Registry defaults to the
// global Prometheus registry.
type Deps struct {
	Log        zerolog.Logger
	JWTSecret  string
	Cookies    middleware.CookieConfig
	Tokens     middleware.TokenChecker
	Reader     *service.SessionReader
	Auth       ports.AuthService
	Dashboards ports.DashboardService
	Mongo      *mongo.Database
	Redis      *redis.Client
	Registry   *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "dashboard",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no session) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Mongo, d.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session-aware routes ---
	// Keys first, then a bearer token if one was sent, then the single
	// session load for everything else.
	app := e.Group("",
		middleware.ClientKeys(d.Cookies),
		middleware.Auth(d.JWTSecret, d.Tokens),
		middleware.Session(d.Reader),
	)

	pages := handler.NewPageHandler()
	app.GET("/", pages.Root)
	app.GET(domain.LoginPath, pages.Login)

	auth := handler.NewAuthHandler(d.Auth, d.Cookies)
	app.POST("/api/v1/auth/login", auth.Login)
	app.POST("/api/v1/auth/logout", auth.Logout)

	anyRole := middleware.RoleGate(gate.Page{Policy: gate.PolicyNotice})
	app.GET("/api/v1/session", handler.NewSessionHandler().Current, anyRole)

	dash := handler.NewDashboardHandler(d.Dashboards)
	app.GET(domain.RoleClient.LandingPath(), dash.Client, landing(domain.RoleClient))
	app.GET(domain.RoleProjectManager.LandingPath(), dash.Manager, landing(domain.RoleProjectManager))
	app.GET(domain.RoleTeamLead.LandingPath(), dash.TeamLead, landing(domain.RoleTeamLead))
	app.GET(domain.RoleDetailer.LandingPath(), dash.Detailer, landing(domain.RoleDetailer))

	app.GET("/projects", dash.Projects, anyRole)
	app.GET("/projects/:id", dash.Project, anyRole)

	return e
}

// landing gates a role's own dashboard. Other roles are sent to login.
func landing(role domain.Role) echo.MiddlewareFunc {
	return middleware.RoleGate(gate.Page{
		Roles:  []domain.Role{role},
		Policy: gate.PolicyRedirect,
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
