package routes

import (
	healthControllers "github.com/Technobabies/meli-ecommerce-orders-api/controllers/health"
	"github.com/Technobabies/meli-ecommerce-orders-api/keepalive"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupHealthRoutes(r *gin.Engine, api *gin.RouterGroup, db *gorm.DB, environment string, pinger *keepalive.Pinger) {
	r.GET("/", healthControllers.RootHandler)

	api.GET("/health", healthControllers.HealthHandler(db, environment))
	api.GET("/ping", healthControllers.PingHandler)
	api.POST("/keep-alive/trigger", healthControllers.TriggerKeepAliveHandler(pinger))
}
