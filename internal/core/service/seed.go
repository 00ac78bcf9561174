package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// SeedAccount is one entry of the demo credential table.
type SeedAccount struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// DemoAccounts has one login per canonical role.
var DemoAccounts = []SeedAccount{
	{Email: "client@steeldetailing.com", Password: "client123", Name: "Client User", Role: domain.RoleClient},
	{Email: "manager@steeldetailing.com", Password: "manager123", Name: "Project Manager", Role: domain.RoleProjectManager},
	{Email: "teamlead@steeldetailing.com", Password: "teamlead123", Name: "Team Lead", Role: domain.RoleTeamLead},
	{Email: "detailer@steeldetailing.com", Password: "detailer123", Name: "Detailer User", Role: domain.RoleDetailer},
}

// SeedAccounts registers accounts, skipping any that already exist. It
// returns how many were created.
func SeedAccounts(ctx context.Context, auth *AuthService, accounts []SeedAccount) (int, error) {
	created := 0
	for _, a := range accounts {
		_, err := auth.Register(ctx, a.Email, a.Name, a.Role, a.Password)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrAccountExists):
		default:
			return created, fmt.Errorf("seed %s: %w", a.Email, err)
		}
	}
	return created, nil
}
