package model

import "gorm.io/datatypes"

const MessageTableName = "messages"

// Message append-only project chat entry
type Message struct {
	BaseModel
	ProjectID string                      `gorm:"type:varchar(36);not null;index" json:"projectId"`
	UserID    string                      `gorm:"type:varchar(36);not null;index" json:"userId"`
	Content   string                      `gorm:"type:text;not null" json:"content"`
	FileIDs   datatypes.JSONSlice[string] `gorm:"type:json" json:"fileIds,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Message) TableName() string {
	return MessageTableName
}
