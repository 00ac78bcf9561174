package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

type dashboardService struct {
	catalog ports.Catalog
	log     zerolog.Logger
}

// NewDashboardService returns a DashboardService over catalog.
func NewDashboardService(catalog ports.Catalog, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{catalog: catalog, log: log}
}

func (s *dashboardService) Client(ctx context.Context, query string) (*ports.ClientDashboard, error) {
	all, err := s.catalog.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("client dashboard: %w", err)
	}

	return &ports.ClientDashboard{
		Projects:  filter(all, query, domain.Project.Matches),
		Total:     len(all),
		Breakdown: countBy(all, func(p domain.Project) string { return p.Status }),
	}, nil
}

func (s *dashboardService) Manager(ctx context.Context, query string) (*ports.ManagerDashboard, error) {
	all, err := s.catalog.Fabricators(ctx)
	if err != nil {
		return nil, fmt.Errorf("manager dashboard: %w", err)
	}

	out := &ports.ManagerDashboard{
		Fabricators:      filter(all, query, domain.Fabricator.Matches),
		TotalFabricators: len(all),
	}
	health := 0
	for _, f := range all {
		out.ActiveProjects += f.ActiveProjects
		health += f.Health
	}
	if len(all) > 0 {
		out.AverageHealth = health / len(all)
	}
	return out, nil
}

func (s *dashboardService) TeamLead(ctx context.Context, query string) (*ports.TeamLeadDashboard, error) {
	all, err := s.catalog.TeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("team lead dashboard: %w", err)
	}

	out := &ports.TeamLeadDashboard{Members: filter(all, query, domain.TeamMember.Matches)}
	for _, m := range all {
		out.TasksAssigned += m.TasksAssigned
		out.TasksCompleted += m.TasksCompleted
	}
	return out, nil
}

func (s *dashboardService) Detailer(ctx context.Context, query string) (*ports.DetailerDashboard, error) {
	all, err := s.catalog.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("detailer dashboard: %w", err)
	}

	return &ports.DetailerDashboard{
		Tasks:     filter(all, query, domain.Task.Matches),
		Breakdown: countBy(all, func(t domain.Task) string { return t.Status }),
	}, nil
}

func (s *dashboardService) Projects(ctx context.Context, query string) ([]domain.Project, error) {
	all, err := s.catalog.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return filter(all, query, domain.Project.Matches), nil
}

func (s *dashboardService) Project(ctx context.Context, id string) (*ports.ProjectDetail, error) {
	p, err := s.catalog.Project(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	notes, err := s.catalog.Notifications(ctx, id)
	if err != nil {
		// The header is still useful without its activity feed.
		s.log.Warn().Err(err).Str("project_id", id).Msg("failed to load notifications")
		notes = nil
	}
	return &ports.ProjectDetail{Project: *p, Notifications: notes}, nil
}

// filter keeps the items matching query, preserving order.
func filter[T any](items []T, query string, match func(T, string) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it, query) {
			out = append(out, it)
		}
	}
	return out
}

// countBy tallies items by key in first-seen order.
func countBy[T any](items []T, key func(T) string) []ports.StatusCount {
	var out []ports.StatusCount
	idx := make(map[string]int)
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, ports.StatusCount{Status: k})
		}
		out[i].Count++
	}
	return out
}
