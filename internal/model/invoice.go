package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceTableName     = "invoices"
	InvoiceItemTableName = "invoice_items"
)

// Invoice subtotal and total are always derived from the items and tax
type Invoice struct {
	BaseModel
	Number    string          `gorm:"size:50;not null;uniqueIndex" json:"number"`
	ClientID  string          `gorm:"type:varchar(36);not null;index" json:"clientId"`
	ProjectID *string         `gorm:"type:varchar(36);index" json:"projectId"`
	Status    string          `gorm:"size:20;not null;default:'draft';index" json:"status"`
	IssueDate time.Time       `gorm:"not null" json:"issueDate"`
	DueDate   time.Time       `gorm:"not null;index" json:"dueDate"`
	PaidDate  *time.Time      `json:"paidDate"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	Tax       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Notes     *string         `gorm:"type:text" json:"notes"`

	Client  *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project *Project      `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Count   Counts        `gorm:"-" json:"_count,omitempty"`
}

func (Invoice) TableName() string {
	return InvoiceTableName
}

// InvoiceItem amount is stored as supplied, not re-derived from quantity and rate
type InvoiceItem struct {
	BaseModel
	InvoiceID   string          `gorm:"type:varchar(36);not null;index" json:"invoiceId"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}

func (InvoiceItem) TableName() string {
	return InvoiceItemTableName
}
