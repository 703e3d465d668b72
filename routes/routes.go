package routes

import (
	"github.com/Technobabies/meli-ecommerce-orders-api/config"
	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/keepalive"
	"github.com/Technobabies/meli-ecommerce-orders-api/middleware"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/Technobabies/meli-ecommerce-orders-api/validators"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the engine with logging, envelope recovery and CORS, and
// mounts every route.
func NewRouter(cfg *config.Config, db *gorm.DB, publisher events.Publisher, pinger *keepalive.Pinger) *gin.Engine {
	validators.Register()

	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery(), middleware.CORS(cfg.CORS))

	SetupRoutes(r, cfg, db, publisher, pinger)
	return r
}

// SetupRoutes is the single entry-point that wires up the order, card,
// payment and health route groups.
func SetupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB, publisher events.Publisher, pinger *keepalive.Pinger) {
	api := r.Group("/api/v1")

	SetupOrderRoutes(api, services.NewOrderService(db, publisher))
	SetupCardRoutes(api, services.NewCardService(db, publisher))
	SetupPaymentRoutes(api, services.NewPaymentService(db, publisher))
	SetupHealthRoutes(r, api, db, cfg.Environment, pinger)
}
