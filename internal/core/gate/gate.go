// Package gate decides what a protected page does with the current session.
//
// A page visit moves through four states. Pending is always checked first so
// that no redirect is ever issued before the session load has completed.
//
//	Pending          load outstanding            wait
//	Unauthenticated  loaded, no identity         redirect to login
//	Forbidden        identity, role not allowed  per-page policy
//	Authorized       identity, role allowed      render
package gate

import "github.com/steeldetailing/pm-dashboard/internal/core/domain"

type State int

const (
	Pending State = iota
	Unauthenticated
	Forbidden
	Authorized
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Policy selects how a page answers a Forbidden visit. It is configured per
// page.
type Policy int

const (
	// PolicyRedirect sends mis-authorized users to the login page.
	PolicyRedirect Policy = iota
	// PolicyNotice renders a permission-denied notice in place.
	PolicyNotice
)

func (p Policy) String() string {
	if p == PolicyNotice {
		return "notice"
	}
	return "redirect"
}

type Action int

const (
	Wait Action = iota
	RedirectLogin
	Notice
	Render
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect_login"
	case Notice:
		return "notice"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Evaluate classifies a page visit. An empty required set means any
// authenticated role may enter.
func Evaluate(view domain.SessionView, required []domain.Role) State {
	if view.IsLoading {
		return Pending
	}
	if view.Identity == nil {
		return Unauthenticated
	}
	if len(required) > 0 && !view.HasPermission(required...) {
		return Forbidden
	}
	return Authorized
}

// Decide maps a state to the action a page takes under policy.
func Decide(state State, policy Policy) Action {
	switch state {
	case Pending:
		return Wait
	case Unauthenticated:
		return RedirectLogin
	case Forbidden:
		if policy == PolicyNotice {
			return Notice
		}
		return RedirectLogin
	default:
		return Render
	}
}

// Page is the gate configuration of one protected page.
type Page struct {
	Roles  []domain.Role
	Policy Policy
}

// Check evaluates view against the page and returns the state and action.
func (p Page) Check(view domain.SessionView) (State, Action) {
	s := Evaluate(view, p.Roles)
	return s, Decide(s, p.Policy)
}

// DeniedMessage is the inline notice shown for a Forbidden visit.
func DeniedMessage(role domain.Role) string {
	return "You don't have permission to access this page. Your role: " + role.String()
}
