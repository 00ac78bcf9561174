package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type searchQuery struct {
	Q string `query:"q" validate:"max=100"`
}

// --- Response types ---

type identityResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	LoginTime time.Time `json:"login_time"`
}

type loginResponse struct {
	Identity identityResponse `json:"identity"`
	Redirect string           `json:"redirect"`
	Token    string           `json:"token"`
}

type sessionResponse struct {
	Identity    identityResponse `json:"identity"`
	LandingPath string           `json:"landing_path"`
}

type loginPageResponse struct {
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type projectResponse struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Code             string       `json:"code"`
	Client           string       `json:"client"`
	StartDate        time.Time    `json:"start_date"`
	DueDate          time.Time    `json:"due_date"`
	Progress         int          `json:"progress"`
	Status           string       `json:"status"`
	CurrentPhase     string       `json:"current_phase"`
	AssignedDetailer string       `json:"assigned_detailer"`
	ActiveCount      int          `json:"active_count"`
	Links            projectLinks `json:"_links"`
}

type projectLinks struct {
	Self string `json:"self"`
}

type clientDashboardResponse struct {
	Projects  []projectResponse     `json:"projects"`
	Total     int                   `json:"total"`
	Breakdown []statusCountResponse `json:"breakdown"`
}

type fabricatorResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ActiveProjects int    `json:"active_projects"`
	Completed      int    `json:"completed"`
	Health         int    `json:"health"`
}

type managerDashboardResponse struct {
	Fabricators      []fabricatorResponse `json:"fabricators"`
	TotalFabricators int                  `json:"total_fabricators"`
	ActiveProjects   int                  `json:"active_projects"`
	AverageHealth    int                  `json:"average_health"`
}

type teamMemberResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	TasksAssigned  int    `json:"tasks_assigned"`
	TasksCompleted int    `json:"tasks_completed"`
	Efficiency     int    `json:"efficiency"`
}

type teamLeadDashboardResponse struct {
	Members        []teamMemberResponse `json:"members"`
	TasksAssigned  int                  `json:"tasks_assigned"`
	TasksCompleted int                  `json:"tasks_completed"`
}

type taskResponse struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

type detailerDashboardResponse struct {
	Tasks     []taskResponse        `json:"tasks"`
	Breakdown []statusCountResponse `json:"breakdown"`
}

type notificationResponse struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type projectDetailResponse struct {
	Project       projectResponse        `json:"project"`
	Notifications []notificationResponse `json:"notifications"`
}
