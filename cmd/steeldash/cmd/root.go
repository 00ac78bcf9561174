// Package cmd implements the steeldash command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/steeldetailing/pm-dashboard/internal/infrastructure/config"
	"github.com/steeldetailing/pm-dashboard/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "steeldash",
	Short: "Steel detailing project dashboard",
	Long: `steeldash serves the role-based project dashboards for a steel detailing
firm: clients, project managers, team leads, and detailers each land on their
own dashboard after login.

Configuration is read from the environment (see internal/infrastructure/config).`,
	SilenceUsage: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "steeldash",
	})
	return cfg, log, nil
}
