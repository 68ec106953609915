package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProjectRequest true "project"
// @Success 201 {object} model.Project
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.projectService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// List
// @Summary List projects
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param keyword query string false "name"
// @Param status query string false "status"
// @Param clientId query string false "client"
// @Success 200 {object} dto.PageResponse
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var q dto.ProjectListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.projectService.List(c.Request.Context(), &q)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get a project with client, tasks and counts
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {object} model.Project
// @Failure 404 {object} utils.Response
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	resp, err := h.projectService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Update
// @Summary Update a project
// @Description progress can only be set while the project has no tasks
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Param request body dto.UpdateProjectRequest true "changes"
// @Success 200 {object} model.Project
// @Router /api/v1/projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.projectService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {object} utils.Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
