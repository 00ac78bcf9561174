package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a detailing job tracked for a fabricator.
type Project struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Code             string    `json:"code" bson:"code"`
	Client           string    `json:"client" bson:"client"`
	StartDate        time.Time `json:"start_date" bson:"start_date"`
	DueDate          time.Time `json:"due_date" bson:"due_date"`
	Progress         int       `json:"progress" bson:"progress"`
	Status           string    `json:"status" bson:"status"`
	CurrentPhase     string    `json:"current_phase" bson:"current_phase"`
	AssignedDetailer string    `json:"assigned_detailer" bson:"assigned_detailer"`
	ActiveCount      int       `json:"active_count" bson:"active_count"`
}

// Matches reports whether q is a case-insensitive substring of the project's
// name, code, or client.
func (p Project) Matches(q string) bool {
	return containsFold(q, p.Name, p.Code, p.Client)
}

// Fabricator is a fabrication shop a project manager oversees.
type Fabricator struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ActiveProjects int    `json:"active_projects"`
	Completed      int    `json:"completed"`
	Health         int    `json:"health"`
}

func (f Fabricator) Matches(q string) bool { return containsFold(q, f.Name) }

// TeamMember is a detailer reporting to a team lead.
type TeamMember struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	TasksAssigned  int    `json:"tasks_assigned"`
	TasksCompleted int    `json:"tasks_completed"`
	Efficiency     int    `json:"efficiency"`
}

func (m TeamMember) Matches(q string) bool { return containsFold(q, m.Name) }

// Task is a unit of detailing work assigned to a detailer.
type Task struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

func (t Task) Matches(q string) bool { return containsFold(q, t.Title, t.Project) }

// Notification is a project activity entry shown in the project header.
type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// containsFold reports whether q occurs in any field, ignoring case. An empty
// query matches everything.
func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
