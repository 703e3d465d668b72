package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxActiveCards is the number of active cards a user may hold.
const MaxActiveCards = 3

type CardInput struct {
	CardholderName string
	CardNumber     string
	ExpirationDate time.Time
}

// CardService enforces the per-user card rules: at most MaxActiveCards active
// cards, unique active card numbers and a single default card.
//
// The cardinality check locks the user's active rows on Postgres, which
// serializes creations once the user holds a card; a user's very first
// cards can still race. Number uniqueness and the single default are
// additionally backed by partial unique indexes.
type CardService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

func NewCardService(db *gorm.DB, publisher events.Publisher) *CardService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CardService{db: db, events: publisher, now: time.Now}
}

// ListCardsByUser returns the user's active cards, masked.
func (s *CardService) ListCardsByUser(ctx context.Context, userID uuid.UUID) ([]models.CardResponse, error) {
	var cards []models.Card
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards for user %s: %w", userID, err)
	}

	out := make([]models.CardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, cards[i].ToResponse())
	}
	return out, nil
}

// CreateCard stores a new non-default card for userID.
func (s *CardService) CreateCard(ctx context.Context, userID uuid.UUID, in CardInput) (*models.CardResponse, error) {
	card := models.Card{
		UserID:         userID,
		CardholderName: in.CardholderName,
		CardNumber:     in.CardNumber,
		ExpirationDate: models.DateOnly(in.ExpirationDate),
		CreatedAt:      s.now(),
		IsDefault:      false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the user's active rows so a concurrent creation waits for this
		// transaction. SQLite has no row locks and ignores the clause.
		var active []models.Card
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("user_id = ?", userID).
			Find(&active).Error; err != nil {
			return fmt.Errorf("count cards for user %s: %w", userID, err)
		}
		if len(active) >= MaxActiveCards {
			return ErrMaxCardsExceeded
		}

		exists, err := numberInUse(tx, userID, in.CardNumber)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateCardNumber
		}

		if err := tx.Create(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCardNumber
			}
			return fmt.Errorf("create card: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := card.ToResponse()
	s.events.Publish(events.TopicCardCreated, card.ID.String(), resp)
	return &resp, nil
}

func numberInUse(tx *gorm.DB, userID uuid.UUID, number string) (bool, error) {
	var n int64
	if err := tx.Model(&models.Card{}).
		Where("user_id = ? AND card_number = ?", userID, number).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("check card number for user %s: %w", userID, err)
	}
	return n > 0, nil
}

func findActiveCard(db *gorm.DB, id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w with ID: %s", ErrCardNotFound, id)
		}
		return nil, fmt.Errorf("find card %s: %w", id, err)
	}
	return &card, nil
}

// GetCardByID fails with ErrCardNotFound for absent and soft-deleted cards.
func (s *CardService) GetCardByID(ctx context.Context, id uuid.UUID) (*models.CardResponse, error) {
	card, err := findActiveCard(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := card.ToResponse()
	return &resp, nil
}

// SetDefaultCard clears the default flag on the user's other active cards and
// sets it on id, all in one transaction. When a concurrent call wins the
// single-default index it fails with ErrDefaultCardConflict.
func (s *CardService) SetDefaultCard(ctx context.Context, id uuid.UUID) (*models.CardResponse, error) {
	var card *models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findActiveCard(tx, id)
		if err != nil {
			return err
		}

		var others []models.Card
		if err := tx.Where("user_id = ? AND id <> ? AND is_default = ?", found.UserID, found.ID, true).
			Find(&others).Error; err != nil {
			return fmt.Errorf("load default cards for user %s: %w", found.UserID, err)
		}
		for i := range others {
			if err := tx.Model(&others[i]).Update("is_default", false).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDefaultCardConflict
				}
				return fmt.Errorf("clear default on card %s: %w", others[i].ID, err)
			}
		}

		if err := tx.Model(found).Update("is_default", true).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDefaultCardConflict
			}
			return fmt.Errorf("set default on card %s: %w", found.ID, err)
		}
		found.IsDefault = true
		card = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := card.ToResponse()
	return &resp, nil
}

// UpdateCard overwrites the cardholder name and expiration date. The number
// and owner are left untouched.
func (s *CardService) UpdateCard(ctx context.Context, id uuid.UUID, cardholderName string, expirationDate time.Time) (*models.CardResponse, error) {
	var card *models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findActiveCard(tx, id)
		if err != nil {
			return err
		}
		found.CardholderName = cardholderName
		found.ExpirationDate = models.DateOnly(expirationDate)
		if err := tx.Model(found).Select("cardholder_name", "expiration_date").Updates(found).Error; err != nil {
			return fmt.Errorf("update card %s: %w", id, err)
		}
		card = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := card.ToResponse()
	return &resp, nil
}

// UpdateCardFull also replaces the card number. The duplicate check only runs
// when the number actually changes.
func (s *CardService) UpdateCardFull(ctx context.Context, id uuid.UUID, in CardInput) (*models.CardResponse, error) {
	var card *models.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findActiveCard(tx, id)
		if err != nil {
			return err
		}

		if in.CardNumber != found.CardNumber {
			exists, err := numberInUse(tx, found.UserID, in.CardNumber)
			if err != nil {
				return err
			}
			if exists {
				return ErrDuplicateCardNumber
			}
		}

		found.CardholderName = in.CardholderName
		found.CardNumber = in.CardNumber
		found.ExpirationDate = models.DateOnly(in.ExpirationDate)
		if err := tx.Model(found).Select("cardholder_name", "card_number", "expiration_date").Updates(found).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCardNumber
			}
			return fmt.Errorf("update card %s: %w", id, err)
		}
		card = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := card.ToResponse()
	return &resp, nil
}

// DeleteCard soft-deletes an active card.
func (s *CardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := findActiveCard(tx, id)
		if err != nil {
			return err
		}
		deletedAt := gorm.DeletedAt{Time: s.now(), Valid: true}
		if err := tx.Model(card).Update("deleted_at", deletedAt).Error; err != nil {
			return fmt.Errorf("delete card %s: %w", id, err)
		}
		return nil
	})
}
