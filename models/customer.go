package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// data.json carries amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Customer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`

	Works    []WorkItem `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Payments []Payment  `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}
