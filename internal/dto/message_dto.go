package dto

import "agency-hub/pkg/utils"

// CreateMessageRequest post a message; the author is the caller
type CreateMessageRequest struct {
	Content string   `json:"content" validate:"required,max=10000"`
	FileIDs []string `json:"fileIds" validate:"omitempty,dive,uuid"`
}

func (r *CreateMessageRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}
