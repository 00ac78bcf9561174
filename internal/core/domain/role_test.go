package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLandingPath(t *testing.T) {
	cases := map[Role]string{
		RoleClient:         "/dashboard/client",
		RoleProjectManager: "/dashboard/manager",
		RoleTeamLead:       "/dashboard/teamlead",
		RoleDetailer:       "/dashboard/detailer",
		Role("Admin"):      LoginPath,
		Role(""):           LoginPath,
	}
	for role, want := range cases {
		if got := role.LandingPath(); got != want {
			t.Fatalf("%q: expected %s, got %s", role, want, got)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(r.String())
		if err != nil || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseRole("Admin"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := ParseRole("client"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("role names are case sensitive, got %v", err)
	}
}

func TestHasPermission(t *testing.T) {
	v := SessionView{Identity: &Identity{Email: "e", Name: "n", Role: RoleTeamLead, IssuedAt: time.Now()}}

	if !v.HasPermission(RoleProjectManager, RoleTeamLead) {
		t.Fatalf("team lead should be in the set")
	}
	if v.HasPermission(RoleClient) {
		t.Fatalf("team lead is not a client")
	}
	if v.HasPermission() {
		t.Fatalf("an empty set grants nothing")
	}
	if (SessionView{}).HasPermission(RoleClient) {
		t.Fatalf("no identity means no permission")
	}
}

func TestIdentityValidate(t *testing.T) {
	now := time.Now()
	valid := Identity{Email: "e", Name: "n", Role: RoleClient, IssuedAt: now}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid identity, got %v", err)
	}

	broken := []Identity{
		{Name: "n", Role: RoleClient, IssuedAt: now},
		{Email: "e", Role: RoleClient, IssuedAt: now},
		{Email: "e", Name: "n", Role: "Admin", IssuedAt: now},
		{Email: "e", Name: "n", Role: RoleClient},
	}
	for i, id := range broken {
		if err := id.Validate(); !errors.Is(err, ErrInvalidIdentity) {
			t.Fatalf("case %d: expected ErrInvalidIdentity, got %v", i, err)
		}
	}

	var nilID *Identity
	if err := nilID.Validate(); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("nil identity: expected ErrInvalidIdentity, got %v", err)
	}
}
