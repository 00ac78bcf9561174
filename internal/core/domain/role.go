package domain

import (
	"errors"
	"fmt"
)

// Role is the closed set of roles known to the dashboard.
type Role string

const (
	RoleClient         Role = "Client"
	RoleProjectManager Role = "Project Manager"
	RoleTeamLead       Role = "Team Lead"
	RoleDetailer       Role = "Detailer"
)

// LoginPath is the login entry point every gate redirects to.
const LoginPath = "/login"

var ErrUnknownRole = errors.New("unknown role")

// landingPaths maps each role to the dashboard it lands on after login and on
// revisiting the application root. It is the only copy of this table.
var landingPaths = map[Role]string{
	RoleClient:         "/dashboard/client",
	RoleProjectManager: "/dashboard/manager",
	RoleTeamLead:       "/dashboard/teamlead",
	RoleDetailer:       "/dashboard/detailer",
}

// Roles returns every canonical role in display order.
func Roles() []Role {
	return []Role{RoleClient, RoleProjectManager, RoleTeamLead, RoleDetailer}
}

// ParseRole converts the stored display name of a role into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := landingPaths[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Valid reports whether r belongs to the canonical enumeration.
func (r Role) Valid() bool {
	_, ok := landingPaths[r]
	return ok
}

// LandingPath returns the dashboard path for r. Unknown roles land on the
// login page, which is never a protected destination.
func (r Role) LandingPath() string {
	if p, ok := landingPaths[r]; ok {
		return p
	}
	return LoginPath
}

func (r Role) String() string { return string(r) }
