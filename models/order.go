package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Money goes over the wire as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "PROCESSING" // Being prepared
	OrderStatusShipped    OrderStatus = "SHIPPED"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "DELIVERED"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "CANCELLED"  // Cancelled before shipping
)

// Order is the aggregate root; it exclusively owns its line items.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null;index" json:"createdBy"`
	Items           []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);not null" json:"status"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deletedAt"`
	OrderDate       time.Time       `gorm:"autoCreateTime;not null" json:"orderDate"`
	LastUpdatedDate time.Time       `gorm:"autoUpdateTime" json:"lastUpdatedDate"`
}

// OrderLineItem is persisted only through its owning Order. OrderID is the
// storage foreign key; there is no in-memory pointer back to the Order.
type OrderLineItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position     int             `gorm:"not null" json:"-"`
	ProductID    uuid.UUID       `gorm:"type:uuid" json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"pricePerUnit"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (i *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// NewOrderLineItem builds a line item whose total is pricePerUnit × quantity.
func NewOrderLineItem(productID uuid.UUID, productName string, quantity int, pricePerUnit decimal.Decimal) OrderLineItem {
	return OrderLineItem{
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		TotalPrice:   pricePerUnit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// IsActive reports whether the order has not been soft-deleted.
func (o *Order) IsActive() bool {
	return !o.DeletedAt.Valid
}
