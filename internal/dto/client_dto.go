package dto

import "agency-hub/pkg/utils"

// CreateClientRequest create client
type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

func (r *CreateClientRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// UpdateClientRequest partial update; nil fields are left unchanged
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

func (r *UpdateClientRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// ClientListQuery list filters; keyword matches name, email or company
type ClientListQuery struct {
	PageQuery
}
