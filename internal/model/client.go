package model

const ClientTableName = "clients"

// Client a customer of the agency
type Client struct {
	BaseModel
	Name    string  `gorm:"size:100;not null" json:"name"`
	Email   string  `gorm:"size:255;not null;index" json:"email"`
	Company *string `gorm:"size:255" json:"company"`
	Phone   *string `gorm:"size:50" json:"phone"`

	Projects []Project `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"projects,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"invoices,omitempty"`
	Count    Counts    `gorm:"-" json:"_count,omitempty"`
}

func (Client) TableName() string {
	return ClientTableName
}
