package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

// PortalHandler client-facing read-only views, scoped to the caller's client
type PortalHandler struct {
	portalService service.PortalService
}

func NewPortalHandler(portalService service.PortalService) *PortalHandler {
	return &PortalHandler{
		portalService: portalService,
	}
}

// ListProjects
// @Summary Projects of the caller's client
// @Tags portal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Project
// @Failure 403 {object} utils.Response
// @Router /api/v1/portal/projects [get]
func (h *PortalHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.portalService.ListProjects(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// GetProject
// @Summary Project with tasks, messages and files
// @Tags portal
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "project id"
// @Success 200 {object} model.Project
// @Failure 403 {object} utils.Response
// @Router /api/v1/portal/projects/{id} [get]
func (h *PortalHandler) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.portalService.GetProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// ListInvoices
// @Summary Invoices of the caller's client
// @Tags portal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Invoice
// @Failure 403 {object} utils.Response
// @Router /api/v1/portal/invoices [get]
func (h *PortalHandler) ListInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.portalService.ListInvoices(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// GetInvoice
// @Summary Invoice with items
// @Tags portal
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "invoice id"
// @Success 200 {object} model.Invoice
// @Failure 403 {object} utils.Response
// @Router /api/v1/portal/invoices/{id} [get]
func (h *PortalHandler) GetInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.portalService.GetInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}
