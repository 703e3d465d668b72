package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format for card expiration dates.
const DateLayout = "2006-01-02"

// Card is a stored payment card. CardNumber is never serialized; callers must
// go through ToResponse to expose a card.
//
// The partial unique indexes only cover active rows so a soft-deleted card
// never blocks re-adding the same number or choosing a new default.
type Card struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_cards_user_number,where:deleted_at IS NULL;uniqueIndex:idx_cards_user_default,where:is_default AND deleted_at IS NULL" json:"userId"`
	CardholderName string         `gorm:"not null" json:"cardholderName"`
	CardNumber     string         `gorm:"not null;uniqueIndex:idx_cards_user_number,where:deleted_at IS NULL" json:"-"`
	ExpirationDate time.Time      `gorm:"type:date;not null" json:"expirationDate"`
	CreatedAt      time.Time      `gorm:"not null" json:"createdAt"`
	IsDefault      bool           `gorm:"not null;default:false;uniqueIndex:idx_cards_user_default,where:is_default AND deleted_at IS NULL" json:"isDefault"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CardResponse is the only outward representation of a card.
type CardResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	CardholderName   string    `json:"cardholderName"`
	MaskedCardNumber *string   `json:"maskedCardNumber"`
	ExpirationDate   string    `json:"expirationDate"`
	IsDefault        bool      `json:"isDefault"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (c *Card) ToResponse() CardResponse {
	number := c.CardNumber
	return CardResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		CardholderName:   c.CardholderName,
		MaskedCardNumber: MaskCardNumber(&number),
		ExpirationDate:   c.ExpirationDate.Format(DateLayout),
		IsDefault:        c.IsDefault,
		CreatedAt:        c.CreatedAt,
	}
}

const maskPrefix = "************"

// MaskCardNumber keeps only the last four characters of number behind twelve
// asterisks, whatever the input length. Inputs of four characters or
// fewer are returned unchanged and nil stays nil.
func MaskCardNumber(number *string) *string {
	if number == nil {
		return nil
	}
	n := *number
	runes := []rune(n)
	if len(runes) <= 4 {
		return &n
	}
	masked := maskPrefix + string(runes[len(runes)-4:])
	return &masked
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
