package healthControllers

import (
	"log"
	"net/http"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/Technobabies/meli-ecommerce-orders-api/database"
	"github.com/Technobabies/meli-ecommerce-orders-api/keepalive"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const ServiceName = "meli-ecommerce-orders-api"

const timestampLayout = "2006-01-02 15:04:05.000"

type HealthResponse struct {
	Status      string          `json:"status"`
	Environment string          `json:"environment"`
	Database    database.Status `json:"database"`
	Timestamp   string          `json:"timestamp"`
	Service     string          `json:"service"`
}

// HealthHandler reports UP with 200 when the database answers a ping and
// DOWN with 503 otherwise.
func HealthHandler(db *gorm.DB, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := database.Check(c.Request.Context(), db)

		res := HealthResponse{
			Status:      "UP",
			Environment: environment,
			Database:    dbStatus,
			Timestamp:   time.Now().Format(timestampLayout),
			Service:     ServiceName,
		}
		status := http.StatusOK
		if !dbStatus.Connected {
			res.Status = "DOWN"
			status = http.StatusServiceUnavailable
			log.Printf("⚠️ Health check DOWN (%s): %s", environment, dbStatus.Message)
		}

		response.Success(c, status, "Health check completed", res)
	}
}

func PingHandler(c *gin.Context) {
	response.Success(c, http.StatusOK, "pong", "Service is alive")
}

// RootHandler answers the bare "/" path.
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "orders api working"})
}

// TriggerKeepAliveHandler runs one keep-alive round on demand.
func TriggerKeepAliveHandler(pinger *keepalive.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Println("🔔 Manual keep-alive ping triggered")
		results := pinger.PingAll(c.Request.Context())
		response.Success(c, http.StatusOK, "Keep-alive ping triggered", gin.H{
			"enabled": pinger.Enabled(),
			"results": results,
		})
	}
}
