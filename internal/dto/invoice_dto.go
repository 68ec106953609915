package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"agency-hub/internal/core/billing"
	"agency-hub/pkg/utils"
)

// InvoiceItemRequest a line item; amount is taken as supplied
type InvoiceItemRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity" validate:"required"`
	Rate        *decimal.Decimal `json:"rate" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

// Line the part of the item used for totals, at storage scale
func (r InvoiceItemRequest) Line() billing.Line {
	return billing.Line{Quantity: deref(r.Quantity), Rate: deref(r.Rate), Amount: deref(r.Amount)}.Rounded()
}

// CreateInvoiceRequest create invoice with its items
type CreateInvoiceRequest struct {
	Number    string               `json:"number" validate:"required,max=50"`
	ClientID  string               `json:"clientId" validate:"required,uuid"`
	ProjectID *string              `json:"projectId" validate:"omitempty,uuid"`
	Status    *string              `json:"status" validate:"omitempty,oneof=draft pending paid overdue canceled"`
	IssueDate Date                 `json:"issueDate" validate:"required"`
	DueDate   Date                 `json:"dueDate" validate:"required"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,dive"`
	Tax       *decimal.Decimal     `json:"tax"`
	Notes     *string              `json:"notes"`
}

func (r *CreateInvoiceRequest) Validate() []utils.FieldError {
	errs := utils.ValidateStruct(r)
	errs = append(errs, validateItems(r.Items)...)
	errs = append(errs, validateTax(r.Tax)...)
	if !r.IssueDate.IsZero() && !r.DueDate.IsZero() && r.DueDate.Before(r.IssueDate.Time) {
		errs = append(errs, utils.FieldError{Field: "dueDate", Message: "must not be before issueDate"})
	}
	return errs
}

// UpdateInvoiceRequest partial update. A non-nil Items replaces every stored item.
type UpdateInvoiceRequest struct {
	Number    *string              `json:"number" validate:"omitempty,min=1,max=50"`
	ClientID  *string              `json:"clientId" validate:"omitempty,uuid"`
	ProjectID *string              `json:"projectId" validate:"omitempty,uuid"`
	Status    *string              `json:"status" validate:"omitempty,oneof=draft pending paid overdue canceled"`
	IssueDate *Date                `json:"issueDate"`
	DueDate   *Date                `json:"dueDate"`
	PaidDate  *Date                `json:"paidDate"`
	Items     []InvoiceItemRequest `json:"items" validate:"omitempty,dive"`
	Tax       *decimal.Decimal     `json:"tax"`
	Notes     *string              `json:"notes"`
}

func (r *UpdateInvoiceRequest) Validate() []utils.FieldError {
	errs := utils.ValidateStruct(r)
	errs = append(errs, validateItems(r.Items)...)
	errs = append(errs, validateTax(r.Tax)...)
	return append(errs, validateDateOrder("dueDate", r.IssueDate, r.DueDate)...)
}

// HasItems reports whether the update replaces the item list
func (r *UpdateInvoiceRequest) HasItems() bool {
	return r.Items != nil
}

// InvoiceListQuery list filters
type InvoiceListQuery struct {
	PageQuery
	Status    string `form:"status"`
	ClientID  string `form:"clientId"`
	ProjectID string `form:"projectId"`
}

func validateItems(items []InvoiceItemRequest) []utils.FieldError {
	var errs []utils.FieldError
	for i, item := range items {
		if item.Quantity != nil && item.Quantity.IsNegative() {
			errs = append(errs, utils.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than or equal to 0"})
		}
		if item.Rate != nil && item.Rate.IsNegative() {
			errs = append(errs, utils.FieldError{Field: fmt.Sprintf("items[%d].rate", i), Message: "must be greater than or equal to 0"})
		}
		errs = append(errs, validateScale(fmt.Sprintf("items[%d].quantity", i), item.Quantity)...)
		errs = append(errs, validateScale(fmt.Sprintf("items[%d].rate", i), item.Rate)...)
		errs = append(errs, validateScale(fmt.Sprintf("items[%d].amount", i), item.Amount)...)
	}
	return errs
}

func validateTax(tax *decimal.Decimal) []utils.FieldError {
	if tax != nil && tax.IsNegative() {
		return []utils.FieldError{{Field: "tax", Message: "must be greater than or equal to 0"}}
	}
	return validateScale("tax", tax)
}

// validateScale money columns hold 2 decimal places; anything finer would be rounded away on insert
func validateScale(field string, d *decimal.Decimal) []utils.FieldError {
	if d != nil && billing.ExceedsScale(*d) {
		return []utils.FieldError{{Field: field, Message: fmt.Sprintf("must have at most %d decimal places", billing.Places)}}
	}
	return nil
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
