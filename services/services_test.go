package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/database/dbtest"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	topics []string
	keys   []string
}

func (r *recorder) Publish(topic, key string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.keys = append(r.keys, key)
}

func (r *recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.topics...)
}

type fixture struct {
	db       *gorm.DB
	events   *recorder
	orders   *OrderService
	cards    *CardService
	payments *PaymentService
	clock    time.Time
}

var fixedNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: dbtest.New(t), events: &recorder{}, clock: fixedNow}
	now := func() time.Time { return f.clock }

	f.orders = NewOrderService(f.db, f.events)
	f.orders.now = now
	f.cards = NewCardService(f.db, f.events)
	f.cards.now = now
	f.payments = NewPaymentService(f.db, f.events)
	f.payments.now = now
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

var ctx = context.Background()
