package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItemInput is one requested line of a new order. Quantity and price are
// taken as given; range checks belong to the caller.
type LineItemInput struct {
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PricePerUnit decimal.Decimal
}

type OrderService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

func NewOrderService(db *gorm.DB, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{db: db, events: publisher, now: time.Now}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// CreateOrder builds the order aggregate from items, totals it and stores
// the order with its line items in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, createdBy uuid.UUID, items []LineItemInput) (*models.Order, error) {
	order := models.Order{
		CreatedBy:  createdBy,
		Status:     models.OrderStatusPending,
		TotalPrice: decimal.Zero,
	}
	for i, in := range items {
		line := models.NewOrderLineItem(in.ProductID, in.ProductName, in.Quantity, in.PricePerUnit)
		line.Position = i
		order.Items = append(order.Items, line)
		order.TotalPrice = order.TotalPrice.Add(line.TotalPrice)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.events.Publish(events.TopicOrderCreated, order.ID.String(), order)
	return &order, nil
}

// ListActiveOrders returns every order that has not been soft-deleted, in
// insertion order.
func (s *OrderService) ListActiveOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := preloadItems(s.db.WithContext(ctx)).
		Order("order_date ASC").Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrderByID fails with ErrOrderNotFound for absent and soft-deleted
// orders alike.
func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return findActiveOrder(s.db.WithContext(ctx), id)
}

func findActiveOrder(db *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := preloadItems(db).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w with id: %s", ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

// FindOrderForAudit returns the order even when it has been soft-deleted.
func (s *OrderService) FindOrderForAudit(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := preloadItems(s.db.WithContext(ctx).Unscoped()).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w with id: %s", ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return &order, nil
}

// SoftDeleteOrder stamps deleted_at on an active order. A second call for the
// same id fails with ErrOrderNotFound.
func (s *OrderService) SoftDeleteOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findActiveOrder(tx, id)
		if err != nil {
			return err
		}
		found.DeletedAt = gorm.DeletedAt{Time: s.now(), Valid: true}
		if err := tx.Model(found).Update("deleted_at", found.DeletedAt).Error; err != nil {
			return fmt.Errorf("soft delete order %s: %w", id, err)
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.TopicOrderDeleted, order.ID.String(), order)
	return order, nil
}
