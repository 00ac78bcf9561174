package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/steeldetailing/pm-dashboard/internal/api"
	"github.com/steeldetailing/pm-dashboard/internal/api/middleware"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/catalog"
	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/sweep"
	"github.com/steeldetailing/pm-dashboard/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var shutdownTimeout time.Duration

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing backends")
		}
	}()

	if cfg.Auth.SeedDemo {
		n, err := service.SeedAccounts(ctx, b.auth, service.DemoAccounts)
		if err != nil {
			return err
		}
		log.Info().Int("created", n).Msg("demo accounts seeded")
	}

	if tier, ok := b.durable.(ports.StaleSweeper); ok {
		sweep.New(tier, cfg.Session.DeviceCookieTTL, cfg.Session.SweepInterval, logger.For("sweeper")).Start(ctx)
	}

	e := api.NewRouter(api.Deps{
		Log:       logger.For("http"),
		JWTSecret: b.secret,
		Cookies: middleware.CookieConfig{
			DeviceTTL: cfg.Session.DeviceCookieTTL,
			Secure:    cfg.Session.CookieSecure,
		},
		Tokens:     b.store,
		Reader:     service.NewSessionReader(b.store, logger.For("session_reader")),
		Auth:       b.auth,
		Dashboards: service.NewDashboardService(catalog.NewStatic(), logger.For("dashboards")),
		Mongo:      b.mongo,
		Redis:      b.redis,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
