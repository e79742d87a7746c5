package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// ProjectHandler handles project CRUD and status transitions.
type ProjectHandler struct {
	projects ports.ProjectService
}

func NewProjectHandler(projects ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description" validate:"required"`
	Budget      float64    `json:"budget"      validate:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	// ClientID is only honored for admin callers.
	ClientID string `json:"client_id,omitempty"`
}

type updateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active on_hold completed cancelled"`
}

type listProjectsResponse struct {
	Data       []*domain.Project `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create registers a new project.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project payload"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Create(c.Request().Context(), actor, ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		ClientID:    req.ClientID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// Get returns a single project by id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, project)
}

// List returns a paginated project list. Clients see only their own projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        search  query     string  false  "Title search"
// @Param        page    query     int     false  "Page number"   default(1)
// @Param        limit   query     int     false  "Page size"     default(20)
// @Success      200     {object}  listProjectsResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var query struct {
		Status string `query:"status"`
		Search string `query:"search"`
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
	}
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.projects.List(c.Request().Context(), actor, ports.ListProjectsInput{
		Status: query.Status,
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Project{}
	}
	return c.JSON(http.StatusOK, listProjectsResponse{
		Data:       items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus moves a project through its lifecycle.
//
// @Summary      Update project status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Project id"
// @Param        body  body      updateProjectStatusRequest  true  "Target status"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req updateProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.projects.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ProjectStatus(req.Status)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "project status updated"})
}
