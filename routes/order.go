package routes

import (
	orderControllers "github.com/Technobabies/meli-ecommerce-orders-api/controllers/order"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(api *gin.RouterGroup, svc *services.OrderService) {
	orders := api.Group("/orders")
	{
		// Create a new order
		orders.POST("", orderControllers.CreateOrderHandler(svc))

		// Fetch all active orders
		orders.GET("", orderControllers.GetAllOrdersHandler(svc))

		// Download active orders as a spreadsheet
		orders.GET("/export", orderControllers.ExportOrdersToExcel(svc))

		orders.GET("/:id", orderControllers.GetOrderHandler(svc))

		// Soft-delete an order
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(svc))
	}
}
