package dto

import "agency-hub/pkg/utils"

// UpdateUserRequest admin update of a user
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin member client"`
	ClientID *string `json:"clientId" validate:"omitempty,uuid"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=512"`
}

func (r *UpdateUserRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// UserListQuery list filters
type UserListQuery struct {
	PageQuery
	Role     string `form:"role"`
	ClientID string `form:"clientId"`
}
