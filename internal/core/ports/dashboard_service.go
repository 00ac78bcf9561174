package ports

import (
	"context"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// StatusCount is one slice of a status breakdown.
type StatusCount struct {
	Status string
	Count  int
}

// ClientDashboard is the Client landing view.
type ClientDashboard struct {
	Projects  []domain.Project
	Total     int
	Breakdown []StatusCount
}

// ManagerDashboard is the Project Manager landing view.
type ManagerDashboard struct {
	Fabricators      []domain.Fabricator
	TotalFabricators int
	ActiveProjects   int
	AverageHealth    int
}

// TeamLeadDashboard is the Team Lead landing view.
type TeamLeadDashboard struct {
	Members        []domain.TeamMember
	TasksAssigned  int
	TasksCompleted int
}

// DetailerDashboard is the Detailer landing view.
type DetailerDashboard struct {
	Tasks     []domain.Task
	Breakdown []StatusCount
}

// ProjectDetail is the project header plus its notifications.
type ProjectDetail struct {
	Project       domain.Project
	Notifications []domain.Notification
}

// DashboardService builds the per-role views. Every query is a
// case-insensitive substring filter; empty matches everything.
type DashboardService interface {
	Client(ctx context.Context, query string) (*ClientDashboard, error)
	Manager(ctx context.Context, query string) (*ManagerDashboard, error)
	TeamLead(ctx context.Context, query string) (*TeamLeadDashboard, error)
	Detailer(ctx context.Context, query string) (*DetailerDashboard, error)
	Projects(ctx context.Context, query string) ([]domain.Project, error)
	Project(ctx context.Context, id string) (*ProjectDetail, error)
}
