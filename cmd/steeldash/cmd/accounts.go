package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/service"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage login accounts",
}

var accountsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo account for every role",
	Long: `Create one demo login per role in the configured account directory.
Existing accounts are left untouched, so the command is safe to re-run.

With ACCOUNTS_BACKEND=memory the accounts vanish when the command exits;
point it at mongo to seed a shared directory.`,
	Args: cobra.NoArgs,
	RunE: runAccountsSeed,
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <email> <name> <role> <password>",
	Short: "Register a single account",
	Long: `Register a single account. Role must be one of:
  Client, Project Manager, Team Lead, Detailer`,
	Args: cobra.ExactArgs(4),
	RunE: runAccountsAdd,
}

var accountsHashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func init() {
	accountsCmd.AddCommand(accountsSeedCmd, accountsAddCmd, accountsHashCmd)
	rootCmd.AddCommand(accountsCmd)
}

func runAccountsSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQuietly(b)

	n, err := service.SeedAccounts(ctx, b.auth, service.DemoAccounts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d demo accounts\n", n, len(service.DemoAccounts))
	return nil
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	role, err := domain.ParseRole(args[2])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQuietly(b)

	acct, err := b.auth.Register(ctx, args[0], args[1], role, args[3])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s), lands on %s\n", acct.Email, acct.Role, acct.Role.LandingPath())
	return nil
}

func closeQuietly(b *backends) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = b.Close(ctx)
}
