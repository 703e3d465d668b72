package routes

import (
	paymentControllers "github.com/Technobabies/meli-ecommerce-orders-api/controllers/payment"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(api *gin.RouterGroup, svc *services.PaymentService) {
	payments := api.Group("/payments")
	{
		payments.POST("/:userId", paymentControllers.CreatePaymentHandler(svc))
		payments.GET("/:userId", paymentControllers.GetPaymentsHandler(svc))
	}
}
