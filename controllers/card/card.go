package cardControllers

import (
	"net/http"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
)

// -------- Request Structs --------
type CreateCardRequest struct {
	CardholderName string `json:"cardholderName" binding:"required,notblank"`
	CardNumber     string `json:"cardNumber" binding:"required,cardnumber"`
	ExpirationDate string `json:"expirationDate" binding:"required,datetime=2006-01-02"`
}

type UpdateCardRequest struct {
	CardholderName string `json:"cardholderName" binding:"required,notblank"`
	ExpirationDate string `json:"expirationDate" binding:"required,datetime=2006-01-02"`
}

// -------- Helpers --------

// futureDate parses an expiration date that must fall after today (UTC). On
// failure it writes the validation envelope and returns false.
func futureDate(c *gin.Context, raw string) (time.Time, bool) {
	d, err := models.ParseDate(raw)
	if err != nil {
		response.Invalid(c, map[string]string{"expirationDate": "expirationDate must be a date in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	if !d.After(models.DateOnly(time.Now())) {
		response.Invalid(c, map[string]string{"expirationDate": "Expiration date must be in the future"})
		return time.Time{}, false
	}
	return d, true
}

// -------- Handlers --------

// GetCardsHandler lists a user's active cards with masked numbers.
func GetCardsHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := response.ParamUUID(c, "userId")
		if !ok {
			return
		}

		cards, err := svc.ListCardsByUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Cards fetched successfully", cards)
	}
}

func CreateCardHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := response.ParamUUID(c, "userId")
		if !ok {
			return
		}
		var req CreateCardRequest
		if !response.Bind(c, &req) {
			return
		}
		exp, ok := futureDate(c, req.ExpirationDate)
		if !ok {
			return
		}

		card, err := svc.CreateCard(c.Request.Context(), userID, services.CardInput{
			CardholderName: req.CardholderName,
			CardNumber:     req.CardNumber,
			ExpirationDate: exp,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Card created successfully", card)
	}
}

// UpdateCardHandler changes the cardholder name and expiration date only.
func UpdateCardHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := response.ParamUUID(c, "cardId")
		if !ok {
			return
		}
		var req UpdateCardRequest
		if !response.Bind(c, &req) {
			return
		}
		exp, ok := futureDate(c, req.ExpirationDate)
		if !ok {
			return
		}

		card, err := svc.UpdateCard(c.Request.Context(), cardID, req.CardholderName, exp)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Card updated successfully", card)
	}
}

// UpdateCardFullHandler also replaces the card number.
func UpdateCardFullHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := response.ParamUUID(c, "cardId")
		if !ok {
			return
		}
		var req CreateCardRequest
		if !response.Bind(c, &req) {
			return
		}
		exp, ok := futureDate(c, req.ExpirationDate)
		if !ok {
			return
		}

		card, err := svc.UpdateCardFull(c.Request.Context(), cardID, services.CardInput{
			CardholderName: req.CardholderName,
			CardNumber:     req.CardNumber,
			ExpirationDate: exp,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Card updated successfully", card)
	}
}

func SetDefaultCardHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := response.ParamUUID(c, "cardId")
		if !ok {
			return
		}

		card, err := svc.SetDefaultCard(c.Request.Context(), cardID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Default card updated successfully", card)
	}
}

func DeleteCardHandler(svc *services.CardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cardID, ok := response.ParamUUID(c, "cardId")
		if !ok {
			return
		}

		if err := svc.DeleteCard(c.Request.Context(), cardID); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Card deleted successfully", nil)
	}
}
