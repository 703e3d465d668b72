package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

func NewPaymentService(db *gorm.DB, publisher events.Publisher) *PaymentService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &PaymentService{db: db, events: publisher, now: time.Now}
}

// CreatePayment records an approved payment of orderID's total with cardID.
// Both must be active, and the card must not expire before today (UTC).
func (s *PaymentService) CreatePayment(ctx context.Context, createdBy, orderID, cardID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findActiveOrder(tx, orderID)
		if err != nil {
			return err
		}
		card, err := findActiveCard(tx, cardID)
		if err != nil {
			return err
		}

		now := s.now()
		if models.DateOnly(card.ExpirationDate).Before(models.DateOnly(now)) {
			return fmt.Errorf("%w: %s", ErrCardExpired, card.ExpirationDate.Format(models.DateLayout))
		}

		payment = models.Payment{
			CreatedBy:  createdBy,
			OrderID:    order.ID,
			CardID:     card.ID,
			TotalPrice: order.TotalPrice,
			Status:     models.PaymentStatusApproved,
			CreatedAt:  now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.TopicPaymentCreated, payment.ID.String(), payment)
	return &payment, nil
}

// ListPaymentsByUser returns the payments created by userID, oldest first.
func (s *PaymentService) ListPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments for user %s: %w", userID, err)
	}
	return payments, nil
}
