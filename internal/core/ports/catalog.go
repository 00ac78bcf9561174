package ports

import (
	"context"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// Catalog is the read-only source of dashboard data.
type Catalog interface {
	Projects(ctx context.Context) ([]domain.Project, error)
	// Project returns domain.ErrProjectNotFound for unknown ids.
	Project(ctx context.Context, id string) (*domain.Project, error)
	Notifications(ctx context.Context, projectID string) ([]domain.Notification, error)
	Fabricators(ctx context.Context) ([]domain.Fabricator, error)
	TeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	Tasks(ctx context.Context) ([]domain.Task, error)
}
