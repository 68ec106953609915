package model

const FileTableName = "files"

// File metadata of an object stored in the bucket. URL is a presigned link and goes stale.
type File struct {
	BaseModel
	Name         string  `gorm:"size:255;not null" json:"name"`
	Size         int64   `gorm:"not null" json:"size"`
	MimeType     string  `gorm:"size:100;not null" json:"mimeType"`
	Key          string  `gorm:"size:512;not null;uniqueIndex" json:"key"`
	URL          string  `gorm:"type:text" json:"url"`
	ProjectID    *string `gorm:"type:varchar(36);index" json:"projectId"`
	UploadedByID string  `gorm:"type:varchar(36);not null;index" json:"uploadedById"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UploadedBy *User    `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
}

func (File) TableName() string {
	return FileTableName
}
