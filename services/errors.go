package services

import "errors"

// Domain failures. Services wrap them with context; the HTTP layer
// classifies them with errors.Is.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCardNotFound        = errors.New("card not found")
	ErrMaxCardsExceeded    = errors.New("user has reached the maximum limit of 3 cards")
	ErrDuplicateCardNumber = errors.New("card number already exists for this user")
	ErrCardExpired         = errors.New("card is expired")
	ErrDefaultCardConflict = errors.New("another card became the default for this user, retry")
)
