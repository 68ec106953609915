package handler

import (
	"github.com/gin-gonic/gin"

	"agency-hub/internal/dto"
	"agency-hub/internal/service"
	"agency-hub/pkg/utils"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Create
// @Summary Create an invoice with items
// @Description subtotal and total are computed from the items and tax
// @Tags invoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateInvoiceRequest true "invoice"
// @Success 201 {object} model.Invoice
// @Failure 409 {object} utils.Response
// @Router /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, resp)
}

// List
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param pageSize query int false "page size" default(20)
// @Param keyword query string false "number"
// @Param status query string false "status"
// @Param clientId query string false "client"
// @Param projectId query string false "project"
// @Success 200 {object} dto.PageResponse
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var q dto.InvoiceListQuery
	if !bindQuery(c, &q) {
		return
	}

	resp, err := h.invoiceService.List(c.Request.Context(), &q)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Get
// @Summary Get an invoice with items
// @Tags invoices
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "invoice id"
// @Success 200 {object} model.Invoice
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	resp, err := h.invoiceService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Update
// @Summary Update an invoice
// @Description items, when present, replace every stored item in one transaction
// @Tags invoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "invoice id"
// @Param request body dto.UpdateInvoiceRequest true "changes"
// @Success 200 {object} model.Invoice
// @Router /api/v1/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.invoiceService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// MarkPaid
// @Summary Mark an invoice paid
// @Description sets status paid and paidDate to now, also when already paid
// @Tags invoices
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "invoice id"
// @Success 200 {object} model.Invoice
// @Router /api/v1/invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	resp, err := h.invoiceService.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// Delete
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "invoice id"
// @Success 200 {object} utils.Response
// @Router /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, nil)
}
