package model

import "time"

const TaskTableName = "tasks"

// Task a unit of work inside a project. Status transitions are unconstrained.
type Task struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  *string    `gorm:"type:text" json:"description"`
	Status       string     `gorm:"size:20;not null;default:'todo';index" json:"status"`
	Priority     *string    `gorm:"size:10" json:"priority"`
	ProjectID    string     `gorm:"type:varchar(36);not null;index" json:"projectId"`
	AssignedToID *string    `gorm:"type:varchar(36);index" json:"assignedToId"`
	Order        int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	DueDate      *time.Time `json:"dueDate"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo *User    `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assignedTo,omitempty"`
}

func (Task) TableName() string {
	return TaskTableName
}
