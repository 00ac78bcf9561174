package gate

import (
	"testing"
	"time"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

func loaded(role domain.Role) domain.SessionView {
	return domain.SessionView{Identity: &domain.Identity{
		Email: "x@steeldetailing.com", Name: "X", Role: role, IssuedAt: time.Now(),
	}}
}

func TestEvaluate(t *testing.T) {
	managers := []domain.Role{domain.RoleProjectManager, domain.RoleTeamLead}

	cases := []struct {
		name     string
		view     domain.SessionView
		required []domain.Role
		want     State
	}{
		{"pending", domain.SessionView{IsLoading: true}, managers, Pending},
		{"pending even with identity", domain.SessionView{IsLoading: true, Identity: loaded(domain.RoleTeamLead).Identity}, managers, Pending},
		{"no identity", domain.SessionView{}, managers, Unauthenticated},
		{"wrong role", loaded(domain.RoleDetailer), managers, Forbidden},
		{"allowed role", loaded(domain.RoleTeamLead), managers, Authorized},
		{"any role", loaded(domain.RoleClient), nil, Authorized},
		{"any role needs identity", domain.SessionView{}, nil, Unauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.view, tc.required); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		state  State
		policy Policy
		want   Action
	}{
		{Pending, PolicyRedirect, Wait},
		{Pending, PolicyNotice, Wait},
		{Unauthenticated, PolicyRedirect, RedirectLogin},
		{Unauthenticated, PolicyNotice, RedirectLogin},
		{Forbidden, PolicyRedirect, RedirectLogin},
		{Forbidden, PolicyNotice, Notice},
		{Authorized, PolicyRedirect, Render},
		{Authorized, PolicyNotice, Render},
	}

	for _, tc := range cases {
		if got := Decide(tc.state, tc.policy); got != tc.want {
			t.Fatalf("Decide(%s, %s): expected %s, got %s", tc.state, tc.policy, tc.want, got)
		}
	}
}

func TestPageCheck(t *testing.T) {
	page := Page{Roles: []domain.Role{domain.RoleClient}, Policy: PolicyNotice}

	state, action := page.Check(loaded(domain.RoleDetailer))
	if state != Forbidden || action != Notice {
		t.Fatalf("expected forbidden notice, got %s/%s", state, action)
	}
	if msg := DeniedMessage(domain.RoleDetailer); msg != "You don't have permission to access this page. Your role: Detailer" {
		t.Fatalf("unexpected message %q", msg)
	}
}
