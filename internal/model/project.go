package model

import "time"

const ProjectTableName = "projects"

// Project progress is derived from task statuses once the project has tasks
type Project struct {
	BaseModel
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'new';index" json:"status"`
	ClientID    *string    `gorm:"type:varchar(36);index" json:"clientId"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`

	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Tasks    []Task    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Messages []Message `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Files    []File    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Count    Counts    `gorm:"-" json:"_count,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}
