package ports

import (
	"context"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// LoginInput carries the submitted credentials and the retention choice.
type LoginInput struct {
	Email    string
	Password string
	// Remember selects the durable tier in addition to the session-scoped one.
	Remember bool
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Identity    *domain.Identity
	LandingPath string
	Token       string
}

type AuthService interface {
	Login(ctx context.Context, keys ClientKeys, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, keys ClientKeys) error
}
