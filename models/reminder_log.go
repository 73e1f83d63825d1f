// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReminderLog records one debt reminder attempt.
type ReminderLog struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Phone        string          `gorm:"type:varchar(32)"`
	Remaining    decimal.Decimal `gorm:"type:decimal(14,2)"`
	Message      string          `gorm:"type:text"`
	Status       string          `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string          `gorm:"type:text"`
	SentAt       time.Time
	CreatedAt    time.Time
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
