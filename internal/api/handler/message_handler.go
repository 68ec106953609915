package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Create
// @Summary Post a message to a project
// @Tags messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Param request body dto.CreateMessageRequest true "message"
// @Success 201 {object} model.Message
// @Router /api/v1/projects/{id}/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.messageService.Create(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// ListByProject
// @Summary List project messages, oldest first
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {array} model.Message
// @Router /api/v1/projects/{id}/messages [get]
func (h *MessageHandler) ListByProject(c *gin.Context) {
	resp, err := h.messageService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get a message
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "message id"
// @Success 200 {object} model.Message
// @Router /api/v1/messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	resp, err := h.messageService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "message id"
// @Success 200 {object} utils.Response
// @Router /api/v1/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messageService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
