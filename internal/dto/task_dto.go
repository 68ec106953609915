package dto

import "agency-hub/pkg/utils"

// CreateTaskRequest create task; the project comes from the path
type CreateTaskRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Description  *string `json:"description"`
	Status       *string `json:"status" validate:"omitempty,oneof=backlog todo in_progress done"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedToID *string `json:"assignedToId" validate:"omitempty,uuid"`
	DueDate      *Date   `json:"dueDate"`
	Order        *int    `json:"order" validate:"omitempty,gte=0"`
}

func (r *CreateTaskRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// UpdateTaskRequest partial update; any status transition is allowed
type UpdateTaskRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description"`
	Status       *string `json:"status" validate:"omitempty,oneof=backlog todo in_progress done"`
	Priority     *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedToID *string `json:"assignedToId" validate:"omitempty,uuid"`
	DueDate      *Date   `json:"dueDate"`
	Order        *int    `json:"order" validate:"omitempty,gte=0"`
}

func (r *UpdateTaskRequest) Validate() []utils.FieldError {
	return utils.ValidateStruct(r)
}

// TaskListQuery list filters for GET /tasks
type TaskListQuery struct {
	PageQuery
	ProjectID    string `form:"projectId"`
	Status       string `form:"status"`
	AssignedToID string `form:"assignedToId"`
}
