package routes

import (
	cardControllers "github.com/Technobabies/meli-ecommerce-orders-api/controllers/card"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
)

// SetupCardRoutes mounts the card endpoints. GET and POST address a user,
// PUT and DELETE address a single card.
func SetupCardRoutes(api *gin.RouterGroup, svc *services.CardService) {
	cards := api.Group("/cards")
	{
		cards.GET("/:userId", cardControllers.GetCardsHandler(svc))
		cards.POST("/:userId", cardControllers.CreateCardHandler(svc))

		cards.PUT("/:cardId", cardControllers.UpdateCardHandler(svc))
		cards.PUT("/:cardId/full", cardControllers.UpdateCardFullHandler(svc))
		cards.PUT("/:cardId/set-default", cardControllers.SetDefaultCardHandler(svc))
		cards.DELETE("/:cardId", cardControllers.DeleteCardHandler(svc))
	}
}
