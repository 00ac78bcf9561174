package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

// DashboardHandler serves the per-role landing pages and the project pages.
// Access is enforced by the role gate in front of each route.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Client handles GET /dashboard/client.
//
// @Summary      Client dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by project name, code, or client"
// @Success      200  {object}  clientDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/client [get]
func (h *DashboardHandler) Client(c echo.Context) error {
	q, err := bindSearch(c)
	if err != nil {
		return err
	}
	d, err := h.service.Client(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(d))
}

// Manager handles GET /dashboard/manager.
//
// @Summary      Project manager dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by fabricator name"
// @Success      200  {object}  managerDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/manager [get]
func (h *DashboardHandler) Manager(c echo.Context) error {
	q, err := bindSearch(c)
	if err != nil {
		return err
	}
	d, err := h.service.Manager(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toManagerResponse(d))
}

// TeamLead handles GET /dashboard/teamlead.
//
// @Summary      Team lead dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by team member name"
// @Success      200  {object}  teamLeadDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/teamlead [get]
func (h *DashboardHandler) TeamLead(c echo.Context) error {
	q, err := bindSearch(c)
	if err != nil {
		return err
	}
	d, err := h.service.TeamLead(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTeamLeadResponse(d))
}

// Detailer handles GET /dashboard/detailer.
//
// @Summary      Detailer dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by task title or project"
// @Success      200  {object}  detailerDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/detailer [get]
func (h *DashboardHandler) Detailer(c echo.Context) error {
	q, err := bindSearch(c)
	if err != nil {
		return err
	}
	d, err := h.service.Detailer(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailerResponse(d))
}

// Projects handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Filter by project name, code, or client"
// @Success      200  {array}   projectResponse
// @Failure      401  {object}  errorResponse
// @Router       /projects [get]
func (h *DashboardHandler) Projects(c echo.Context) error {
	q, err := bindSearch(c)
	if err != nil {
		return err
	}
	ps, err := h.service.Projects(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(ps))
}

// Project handles GET /projects/:id.
//
// @Summary      Project detail
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  projectDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *DashboardHandler) Project(c echo.Context) error {
	d, err := h.service.Project(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectDetailResponse(d))
}

func bindSearch(c echo.Context) (string, error) {
	var sq searchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &sq); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&sq); err != nil {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return sq.Q, nil
}
