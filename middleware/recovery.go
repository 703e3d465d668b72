package middleware

import (
	"log"
	"net/http"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("❌ panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		response.Failure(c, http.StatusInternalServerError, "An unexpected error occurred", nil)
	})
}
