package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkItem is a billable unit of service rendered to a customer.
type WorkItem struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID       `json:"customerId" gorm:"type:uuid;index;not null"`
	CustomerName string          `json:"customerName"`
	Date         Date            `json:"date" gorm:"type:date;not null"`
	MaterialType string          `json:"materialType" gorm:"not null"`
	PaintType    string          `json:"paintType" gorm:"not null"`
	Description  string          `json:"description" gorm:"not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Total is quantity × unit price, the only valid value of Price.
func (w WorkItem) Total() decimal.Decimal {
	return w.UnitPrice.Mul(decimal.NewFromInt(int64(w.Quantity)))
}
