package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel UUID primary key plus timestamps
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns an id unless the caller already set one
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Counts relation counters keyed by relation name, e.g. {"tasks": 3}
type Counts map[string]int64

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&Client{},
		&User{},
		&Project{},
		&Task{},
		&Invoice{},
		&InvoiceItem{},
		&Message{},
		&File{},
	}
}
