package model

import "time"

const UserTableName = "users"

// User a login. ClientID is only set for client-role users.
type User struct {
	BaseModel
	Email       string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Role        string     `gorm:"size:20;not null;default:'member';index" json:"role"`
	ClientID    *string    `gorm:"type:varchar(36);index" json:"clientId"`
	Avatar      *string    `gorm:"size:512" json:"avatar"`
	LastLoginAt *time.Time `json:"lastLoginAt"`

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"client,omitempty"`
}

func (User) TableName() string {
	return UserTableName
}
