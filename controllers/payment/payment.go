package paymentControllers

import (
	"net/http"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
	CardID  uuid.UUID `json:"cardId" binding:"required"`
}

// CreatePaymentHandler charges an order's total to one of the stored cards.
func CreatePaymentHandler(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := response.ParamUUID(c, "userId")
		if !ok {
			return
		}
		var req CreatePaymentRequest
		if !response.Bind(c, &req) {
			return
		}

		payment, err := svc.CreatePayment(c.Request.Context(), userID, req.OrderID, req.CardID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Payment created successfully", payment)
	}
}

func GetPaymentsHandler(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := response.ParamUUID(c, "userId")
		if !ok {
			return
		}

		payments, err := svc.ListPaymentsByUser(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Payments fetched successfully", payments)
	}
}
