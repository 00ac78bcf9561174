package handler

import (
	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

// --- Service result → HTTP response ---

func toIdentityResponse(id *domain.Identity) identityResponse {
	return identityResponse{
		Email:     id.Email,
		Role:      id.Role.String(),
		Name:      id.Name,
		LoginTime: id.IssuedAt.UTC(),
	}
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:               p.ID,
		Name:             p.Name,
		Code:             p.Code,
		Client:           p.Client,
		StartDate:        p.StartDate.UTC(),
		DueDate:          p.DueDate.UTC(),
		Progress:         p.Progress,
		Status:           p.Status,
		CurrentPhase:     p.CurrentPhase,
		AssignedDetailer: p.AssignedDetailer,
		ActiveCount:      p.ActiveCount,
		Links:            projectLinks{Self: "/projects/" + p.ID},
	}
}

func toProjectResponses(ps []domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toBreakdown(counts []ports.StatusCount) []statusCountResponse {
	out := make([]statusCountResponse, 0, len(counts))
	for _, sc := range counts {
		out = append(out, statusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	return out
}

func toClientResponse(d *ports.ClientDashboard) clientDashboardResponse {
	return clientDashboardResponse{
		Projects:  toProjectResponses(d.Projects),
		Total:     d.Total,
		Breakdown: toBreakdown(d.Breakdown),
	}
}

func toManagerResponse(d *ports.ManagerDashboard) managerDashboardResponse {
	fabs := make([]fabricatorResponse, 0, len(d.Fabricators))
	for _, f := range d.Fabricators {
		fabs = append(fabs, fabricatorResponse{
			ID:             f.ID,
			Name:           f.Name,
			ActiveProjects: f.ActiveProjects,
			Completed:      f.Completed,
			Health:         f.Health,
		})
	}
	return managerDashboardResponse{
		Fabricators:      fabs,
		TotalFabricators: d.TotalFabricators,
		ActiveProjects:   d.ActiveProjects,
		AverageHealth:    d.AverageHealth,
	}
}

func toTeamLeadResponse(d *ports.TeamLeadDashboard) teamLeadDashboardResponse {
	members := make([]teamMemberResponse, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, teamMemberResponse{
			ID:             m.ID,
			Name:           m.Name,
			Role:           m.Role.String(),
			TasksAssigned:  m.TasksAssigned,
			TasksCompleted: m.TasksCompleted,
			Efficiency:     m.Efficiency,
		})
	}
	return teamLeadDashboardResponse{
		Members:        members,
		TasksAssigned:  d.TasksAssigned,
		TasksCompleted: d.TasksCompleted,
	}
}

func toDetailerResponse(d *ports.DetailerDashboard) detailerDashboardResponse {
	tasks := make([]taskResponse, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, taskResponse{
			ID:      t.ID,
			Title:   t.Title,
			Project: t.Project,
			Status:  t.Status,
			DueDate: t.DueDate.UTC(),
		})
	}
	return detailerDashboardResponse{
		Tasks:     tasks,
		Breakdown: toBreakdown(d.Breakdown),
	}
}

func toProjectDetailResponse(d *ports.ProjectDetail) projectDetailResponse {
	notes := make([]notificationResponse, 0, len(d.Notifications))
	for _, n := range d.Notifications {
		notes = append(notes, notificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Timestamp: n.Timestamp.UTC(),
		})
	}
	return projectDetailResponse{
		Project:       toProjectResponse(d.Project),
		Notifications: notes,
	}
}
