package dto

import (
	"github.com/google/uuid"

	"agency-hub/pkg/utils"
)

// CreateProjectRequest create project
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=new in_progress pending delayed completed canceled"`
	ClientID    *string `json:"clientId" validate:"omitempty,uuid"`
	StartDate   *Date   `json:"startDate"`
	DueDate     *Date   `json:"dueDate"`
	Progress    *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

func (r *CreateProjectRequest) Validate() []utils.FieldError {
	errs := utils.ValidateStruct(r)
	return append(errs, validateDateOrder("dueDate", r.StartDate, r.DueDate)...)
}

// UpdateProjectRequest partial update. Progress is rejected once the project has tasks.
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=new in_progress pending delayed completed canceled"`
	ClientID    *string `json:"clientId"` // "" unlinks the client
	StartDate   *Date   `json:"startDate"`
	DueDate     *Date   `json:"dueDate"`
	Progress    *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

func (r *UpdateProjectRequest) Validate() []utils.FieldError {
	errs := utils.ValidateStruct(r)
	if r.ClientID != nil && *r.ClientID != "" {
		if err := uuid.Validate(*r.ClientID); err != nil {
			errs = append(errs, utils.FieldError{Field: "clientId", Message: "must be a valid id"})
		}
	}
	return append(errs, validateDateOrder("dueDate", r.StartDate, r.DueDate)...)
}

// UnlinksClient reports whether the update detaches the project from its client
func (r *UpdateProjectRequest) UnlinksClient() bool {
	return r.ClientID != nil && *r.ClientID == ""
}

// ProjectListQuery list filters
type ProjectListQuery struct {
	PageQuery
	Status   string `form:"status"`
	ClientID string `form:"clientId"`
}

func validateDateOrder(field string, start, end *Date) []utils.FieldError {
	if start != nil && end != nil && end.Before(start.Time) {
		return []utils.FieldError{{Field: field, Message: "must not be before the start date"}}
	}
	return nil
}
