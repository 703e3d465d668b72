package services

import (
	"errors"
	"testing"

	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	suite.Suite
	f     *fixture
	user  uuid.UUID
	order *models.Order
}

func (s *PaymentServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.user = uuid.New()

	order, err := s.f.orders.CreateOrder(ctx, s.user, []LineItemInput{
		{ProductID: uuid.New(), ProductName: "Mug", Quantity: 2, PricePerUnit: dec("10.00")},
		{ProductID: uuid.New(), ProductName: "Poster", Quantity: 1, PricePerUnit: dec("50.00")},
	})
	s.Require().NoError(err)
	s.order = order
}

func (s *PaymentServiceSuite) card(expiration string) *models.CardResponse {
	card, err := s.f.cards.CreateCard(ctx, s.user, CardInput{
		CardholderName: "Ada Lovelace",
		CardNumber:     "4532015112" + expiration[:4] + expiration[8:],
		ExpirationDate: date(expiration),
	})
	s.Require().NoError(err)
	return card
}

func (s *PaymentServiceSuite) TestCreatePaymentApproved() {
	card := s.card("2030-12-31")

	payment, err := s.f.payments.CreatePayment(ctx, s.user, s.order.ID, card.ID)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, payment.ID)
	s.Equal(models.PaymentStatusApproved, payment.Status)
	s.True(payment.TotalPrice.Equal(dec("70.00")))
	s.Equal(s.order.ID, payment.OrderID)
	s.Equal(card.ID, payment.CardID)
	s.Equal(s.user, payment.CreatedBy)
	s.Equal(fixedNow, payment.CreatedAt)

	s.Contains(s.f.events.Topics(), events.TopicPaymentCreated)
}

func (s *PaymentServiceSuite) TestExpirationBoundary() {
	// fixedNow is 2025-03-10.
	today := s.card("2025-03-10")
	_, err := s.f.payments.CreatePayment(ctx, s.user, s.order.ID, today.ID)
	s.NoError(err, "a card expiring today is still valid")

	yesterday := s.card("2025-03-09")
	_, err = s.f.payments.CreatePayment(ctx, s.user, s.order.ID, yesterday.ID)
	s.True(errors.Is(err, ErrCardExpired))
}

func (s *PaymentServiceSuite) TestUnknownTargets() {
	card := s.card("2030-12-31")

	_, err := s.f.payments.CreatePayment(ctx, s.user, uuid.New(), card.ID)
	s.True(errors.Is(err, ErrOrderNotFound))

	_, err = s.f.payments.CreatePayment(ctx, s.user, s.order.ID, uuid.New())
	s.True(errors.Is(err, ErrCardNotFound))
}

// Soft-deleted orders and cards are rejected as payment targets. This is
// stricter than a plain existence check: only active rows can be paid.
func (s *PaymentServiceSuite) TestDeletedTargets() {
	card := s.card("2030-12-31")

	s.Require().NoError(s.f.cards.DeleteCard(ctx, card.ID))
	_, err := s.f.payments.CreatePayment(ctx, s.user, s.order.ID, card.ID)
	s.True(errors.Is(err, ErrCardNotFound))

	live := s.card("2031-12-31")
	_, err = s.f.orders.SoftDeleteOrder(ctx, s.order.ID)
	s.Require().NoError(err)
	_, err = s.f.payments.CreatePayment(ctx, s.user, s.order.ID, live.ID)
	s.True(errors.Is(err, ErrOrderNotFound))
}

func (s *PaymentServiceSuite) TestListPaymentsByUser() {
	empty, err := s.f.payments.ListPaymentsByUser(ctx, s.user)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	card := s.card("2030-12-31")
	_, err = s.f.payments.CreatePayment(ctx, s.user, s.order.ID, card.ID)
	s.Require().NoError(err)
	_, err = s.f.payments.CreatePayment(ctx, uuid.New(), s.order.ID, card.ID)
	s.Require().NoError(err)

	payments, err := s.f.payments.ListPaymentsByUser(ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(s.user, payments[0].CreatedBy)
	s.True(payments[0].TotalPrice.Equal(dec("70")))
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}
