package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID       `json:"customerId" gorm:"type:uuid;index;not null"`
	CustomerName string          `json:"customerName"`
	Date         Date            `json:"date" gorm:"type:date;not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method       string          `json:"method" gorm:"not null"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"createdAt"`
}
