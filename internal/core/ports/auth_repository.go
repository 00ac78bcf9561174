package ports

import (
	"context"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// AccountRepository defines the credential lookup the login flow delegates to.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, acct *domain.Account) (*domain.Account, error)
}
