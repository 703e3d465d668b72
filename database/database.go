package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/config"
	"github.com/Technobabies/meli-ecommerce-orders-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GormConfig is shared by every connection the service opens. TranslateError
// makes unique violations surface as gorm.ErrDuplicatedKey on both drivers.
func GormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Open sets up the GORM DB connection for the configured driver.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	log.Printf("✅ Connected to %s database", cfg.Driver)
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Status describes database connectivity for the health endpoint.
type Status struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

// Check pings the database with a 5 second budget.
func Check(ctx context.Context, db *gorm.DB) Status {
	sqlDB, err := db.DB()
	if err != nil {
		return Status{Connected: false, Message: "Database connection failed: " + err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Printf("❌ Database connection check failed: %v", err)
		return Status{Connected: false, Message: "Database connection failed: " + err.Error()}
	}
	return Status{Connected: true, Message: "Connected to " + db.Dialector.Name()}
}
