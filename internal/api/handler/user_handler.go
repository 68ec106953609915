package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List
// @Summary List users
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param keyword query string false "name or email"
// @Param role query string false "role"
// @Param clientId query string false "linked client"
// @Success 200 {object} dto.PageResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.userService.List(c.Request.Context(), &q)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get a user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "user id"
// @Success 200 {object} dto.UserInfo
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Update
// @Summary Update a user
// @Description Rename, change role or link the user to a client
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "user id"
// @Param request body dto.UpdateUserRequest true "changes"
// @Success 200 {object} dto.UserInfo
// @Router /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// ListRoles
// @Summary Known roles
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} string
// @Router /api/v1/roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	utils.Success(c, h.userService.ListRoles())
}
