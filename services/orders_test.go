package services

import (
	"errors"
	"testing"

	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	suite.Suite
	f *fixture
}

func (s *OrderServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
}

func (s *OrderServiceSuite) createSample() *models.Order {
	order, err := s.f.orders.CreateOrder(ctx, uuid.New(), []LineItemInput{
		{ProductID: uuid.New(), ProductName: "Mug", Quantity: 2, PricePerUnit: dec("10.00")},
		{ProductID: uuid.New(), ProductName: "Poster", Quantity: 1, PricePerUnit: dec("50.00")},
	})
	s.Require().NoError(err)
	return order
}

func (s *OrderServiceSuite) TestCreateOrderComputesTotals() {
	order := s.createSample()

	s.NotEqual(uuid.Nil, order.ID)
	s.Equal(models.OrderStatusPending, order.Status)
	s.True(order.TotalPrice.Equal(dec("70.00")), "total was %s", order.TotalPrice)
	s.Require().Len(order.Items, 2)
	s.True(order.Items[0].TotalPrice.Equal(dec("20.00")))
	s.True(order.Items[1].TotalPrice.Equal(dec("50.00")))
	s.True(order.IsActive())

	stored, err := s.f.orders.GetOrderByID(ctx, order.ID)
	s.Require().NoError(err)
	s.True(stored.TotalPrice.Equal(dec("70")))
	s.Require().Len(stored.Items, 2)
	s.Equal("Mug", stored.Items[0].ProductName)
	s.Equal("Poster", stored.Items[1].ProductName)

	s.Equal([]string{events.TopicOrderCreated}, s.f.events.Topics())
}

func (s *OrderServiceSuite) TestCreateOrderTotalIsSumOfLines() {
	order, err := s.f.orders.CreateOrder(ctx, uuid.New(), []LineItemInput{
		{ProductID: uuid.New(), ProductName: "A", Quantity: 3, PricePerUnit: dec("0.10")},
		{ProductID: uuid.New(), ProductName: "B", Quantity: 7, PricePerUnit: dec("1.15")},
		{ProductID: uuid.New(), ProductName: "C", Quantity: 0, PricePerUnit: dec("9.99")},
	})
	s.Require().NoError(err)

	sum := dec("0")
	for _, it := range order.Items {
		s.True(it.TotalPrice.Equal(it.PricePerUnit.Mul(decimal.NewFromInt(int64(it.Quantity)))))
		sum = sum.Add(it.TotalPrice)
	}
	s.True(order.TotalPrice.Equal(sum))
	s.True(order.TotalPrice.Equal(dec("8.35")))
}

func (s *OrderServiceSuite) TestListActiveOrdersExcludesDeleted() {
	empty, err := s.f.orders.ListActiveOrders(ctx)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	first := s.createSample()
	second := s.createSample()

	_, err = s.f.orders.SoftDeleteOrder(ctx, first.ID)
	s.Require().NoError(err)

	orders, err := s.f.orders.ListActiveOrders(ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(second.ID, orders[0].ID)
	s.Len(orders[0].Items, 2)
}

func (s *OrderServiceSuite) TestGetOrderByIDNotFound() {
	_, err := s.f.orders.GetOrderByID(ctx, uuid.New())
	s.True(errors.Is(err, ErrOrderNotFound))
}

func (s *OrderServiceSuite) TestSoftDeleteOrder() {
	order := s.createSample()

	deleted, err := s.f.orders.SoftDeleteOrder(ctx, order.ID)
	s.Require().NoError(err)
	s.False(deleted.IsActive())
	s.Equal(fixedNow, deleted.DeletedAt.Time)

	_, err = s.f.orders.GetOrderByID(ctx, order.ID)
	s.True(errors.Is(err, ErrOrderNotFound))

	_, err = s.f.orders.SoftDeleteOrder(ctx, order.ID)
	s.True(errors.Is(err, ErrOrderNotFound), "second delete must fail")

	audit, err := s.f.orders.FindOrderForAudit(ctx, order.ID)
	s.Require().NoError(err)
	s.False(audit.IsActive())
	s.Len(audit.Items, 2)

	s.Equal([]string{events.TopicOrderCreated, events.TopicOrderDeleted}, s.f.events.Topics())
}

func (s *OrderServiceSuite) TestFindOrderForAuditUnknown() {
	_, err := s.f.orders.FindOrderForAudit(ctx, uuid.New())
	s.True(errors.Is(err, ErrOrderNotFound))
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}
