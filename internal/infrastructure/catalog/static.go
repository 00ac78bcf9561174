// Package catalog serves the fixed dashboard dataset shown to every role.
package catalog

import (
	"context"
	"time"

	"github.com/steeldetailing/pm-dashboard/internal/core/domain"
)

// Static is an immutable, in-process Catalog.
type Static struct {
	projects      []domain.Project
	notifications map[string][]domain.Notification
	fabricators   []domain.Fabricator
	members       []domain.TeamMember
	tasks         []domain.Task
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewStatic returns the built-in dataset.
func NewStatic() *Static {
	feed := []domain.Notification{
		{ID: 1, Type: "rfi", Message: "New RFI RFI-005 added", Timestamp: date("2024-11-12")},
		{ID: 2, Type: "transmittal", Message: "Approval Transmittal AT-004 added", Timestamp: date("2024-11-11")},
		{ID: 3, Type: "change", Message: "Fabrication Transmittal FT-004 status updated", Timestamp: date("2024-11-10")},
	}

	return &Static{
		projects: []domain.Project{
			{
				ID: "1", Name: "Stadium Expansion - North Wing", Code: "PRJ-001", Client: "Metro City Sports",
				StartDate: date("2024-01-15"), DueDate: date("2024-06-30"), Progress: 65, Status: "In Progress",
				CurrentPhase: "Coordination", AssignedDetailer: "Mike Chen", ActiveCount: 1,
			},
			{
				ID: "2", Name: "Commercial Tower Structural Frame", Code: "PRJ-002", Client: "ABC Development Corp",
				StartDate: date("2024-02-01"), DueDate: date("2024-08-15"), Progress: 40, Status: "In Progress",
				CurrentPhase: "Modeling", AssignedDetailer: "Lisa Wong", ActiveCount: 3,
			},
			{
				ID: "3", Name: "Bridge Reinforcement Project", Code: "PRJ-003", Client: "Department of Transportation",
				StartDate: date("2024-03-10"), DueDate: date("2024-09-30"), Progress: 85, Status: "On Track",
				CurrentPhase: "Checking", AssignedDetailer: "Sarah Johnson", ActiveCount: 2,
			},
		},
		notifications: map[string][]domain.Notification{"1": feed, "2": feed, "3": feed},
		fabricators: []domain.Fabricator{
			{ID: 1, Name: "Fabricator A", ActiveProjects: 3, Completed: 5, Health: 85},
			{ID: 2, Name: "Fabricator B", ActiveProjects: 2, Completed: 3, Health: 78},
			{ID: 3, Name: "Fabricator C", ActiveProjects: 4, Completed: 7, Health: 92},
		},
		members: []domain.TeamMember{
			{ID: 1, Name: "John Smith", Role: domain.RoleDetailer, TasksAssigned: 8, TasksCompleted: 6, Efficiency: 75},
			{ID: 2, Name: "Sarah Johnson", Role: domain.RoleDetailer, TasksAssigned: 10, TasksCompleted: 9, Efficiency: 90},
			{ID: 3, Name: "Mike Chen", Role: domain.RoleDetailer, TasksAssigned: 7, TasksCompleted: 7, Efficiency: 100},
		},
		tasks: []domain.Task{
			{ID: 1, Title: "Column Details - Building A", Project: "Commercial Tower", Status: "In Progress", DueDate: date("2024-11-20")},
			{ID: 2, Title: "Beam Connections - Section 3", Project: "Stadium Expansion", Status: "Completed", DueDate: date("2024-11-15")},
			{ID: 3, Title: "Plate Details - Level 5", Project: "Bridge Reinforcement", Status: "In Progress", DueDate: date("2024-11-22")},
			{ID: 4, Title: "Splice Details", Project: "Parking Structure", Status: "Pending", DueDate: date("2024-11-25")},
		},
	}
}

func (s *Static) Projects(context.Context) ([]domain.Project, error) {
	return append([]domain.Project(nil), s.projects...), nil
}

func (s *Static) Project(_ context.Context, id string) (*domain.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (s *Static) Notifications(_ context.Context, projectID string) ([]domain.Notification, error) {
	return append([]domain.Notification(nil), s.notifications[projectID]...), nil
}

func (s *Static) Fabricators(context.Context) ([]domain.Fabricator, error) {
	return append([]domain.Fabricator(nil), s.fabricators...), nil
}

func (s *Static) TeamMembers(context.Context) ([]domain.TeamMember, error) {
	return append([]domain.TeamMember(nil), s.members...), nil
}

func (s *Static) Tasks(context.Context) ([]domain.Task, error) {
	return append([]domain.Task(nil), s.tasks...), nil
}
