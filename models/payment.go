package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusDenied   PaymentStatus = "DENIED"
)

// Payment is an immutable snapshot of one payment attempt. It references the
// order and card by id only.
type Payment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedBy  uuid.UUID       `gorm:"type:uuid;not null;index" json:"createdBy"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	CardID     uuid.UUID       `gorm:"type:uuid;not null" json:"cardId"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	Status     PaymentStatus   `gorm:"type:VARCHAR(20);not null" json:"status"`
	CreatedAt  time.Time       `gorm:"not null" json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// All returns every table the service owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Order{},
		&OrderLineItem{},
		&Card{},
		&Payment{},
	}
}
