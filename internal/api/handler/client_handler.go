package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateClientRequest true "client"
// @Success 201 {object} model.Client
// @Router /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// List
// @Summary List clients
// @Tags clients
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param keyword query string false "name, email or company"
// @Success 200 {object} dto.PageResponse
// @Router /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var q dto.ClientListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.clientService.List(c.Request.Context(), &q)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get a client with its projects and invoices
// @Tags clients
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "client id"
// @Success 200 {object} model.Client
// @Failure 404 {object} utils.Response
// @Router /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	resp, err := h.clientService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Update
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "client id"
// @Param request body dto.UpdateClientRequest true "changes"
// @Success 200 {object} model.Client
// @Router /api/v1/clients/{id} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	var req dto.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete a client
// @Tags clients
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "client id"
// @Success 200 {object} utils.Response
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
