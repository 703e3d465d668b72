package orderControllers

import (
	"net/http"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------
type CreateOrderRequest struct {
	CreatedBy uuid.UUID         `json:"createdBy" binding:"required"`
	Items     []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// Quantities and prices are taken as sent.
type LineItemRequest struct {
	ProductID    uuid.UUID       `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

func (r CreateOrderRequest) lineItems() []services.LineItemInput {
	items := make([]services.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, services.LineItemInput{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
		})
	}
	return items
}

// -------- Handlers --------

// CreateOrderHandler creates an order with its line items.
func CreateOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if !response.Bind(c, &req) {
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), req.CreatedBy, req.lineItems())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Order created successfully", order)
	}
}

// GetAllOrdersHandler lists the orders that have not been deleted.
func GetAllOrdersHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListActiveOrders(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Orders fetched successfully", orders)
	}
}

func GetOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.ParamUUID(c, "id")
		if !ok {
			return
		}

		order, err := svc.GetOrderByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Order found", order)
	}
}

// DeleteOrderHandler soft-deletes an order.
func DeleteOrderHandler(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.ParamUUID(c, "id")
		if !ok {
			return
		}

		if _, err := svc.SoftDeleteOrder(c.Request.Context(), id); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Order deleted successfully", nil)
	}
}
