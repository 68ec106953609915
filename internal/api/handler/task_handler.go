package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create
// @Summary Create a task in a project
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Param request body dto.CreateTaskRequest true "task"
// @Success 201 {object} model.Task
// @Router /api/v1/projects/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.taskService.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// ListByProject
// @Summary List the tasks of a project in board order
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {array} model.Task
// @Router /api/v1/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	resp, err := h.taskService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// List
// @Summary Search tasks across projects
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param keyword query string false "title"
// @Param projectId query string false "project"
// @Param status query string false "status"
// @Param assignedToId query string false "assignee"
// @Success 200 {object} dto.PageResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var q dto.TaskListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.taskService.List(c.Request.Context(), &q)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "task id"
// @Success 200 {object} model.Task
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	resp, err := h.taskService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Update
// @Summary Update a task
// @Description any status transition is allowed; project progress is recalculated
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "task id"
// @Param request body dto.UpdateTaskRequest true "changes"
// @Success 200 {object} model.Task
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.taskService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "task id"
// @Success 200 {object} utils.Response
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
