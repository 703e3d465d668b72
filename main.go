package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Technobabies/meli-ecommerce-orders-api/config"
	"github.com/Technobabies/meli-ecommerce-orders-api/database"
	"github.com/Technobabies/meli-ecommerce-orders-api/events"
	"github.com/Technobabies/meli-ecommerce-orders-api/keepalive"
	"github.com/Technobabies/meli-ecommerce-orders-api/routes"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "orders-api",
		Short:   "Orders, cards and payments REST API",
		Version: Version,
		RunE:    runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(pingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API (default)",
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := initDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)
			log.Println("✅ Migration complete")
			return nil
		},
	}
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Run one keep-alive round against the configured endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pinger := keepalive.New(cfg.KeepAlive)
			if !pinger.Enabled() {
				fmt.Println("keep-alive is disabled (KEEPALIVE_ENABLED=false)")
				return nil
			}
			failed := 0
			for _, r := range pinger.PingAll(cmd.Context()) {
				if !r.OK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d endpoint(s) failed", failed)
			}
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	publisher, closePublisher := initPublisher(cfg.Kafka)
	defer closePublisher()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pinger := keepalive.New(cfg.KeepAlive)
	go pinger.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(cfg, db, publisher, pinger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server running on port %s (%s)...", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// initDatabase connects and migrates every table.
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// initPublisher connects to Kafka when brokers are configured. Without
// brokers, or when Kafka cannot be reached, events are dropped.
func initPublisher(cfg config.KafkaConfig) (events.Publisher, func()) {
	if len(cfg.Brokers) == 0 {
		log.Println("ℹ️ KAFKA_BROKERS not set, domain events disabled")
		return events.Nop{}, func() {}
	}

	pub, err := events.NewKafkaPublisher(cfg.Brokers, cfg.TopicPrefix)
	if err != nil {
		log.Printf("❌ Kafka unavailable, domain events disabled: %v", err)
		return events.Nop{}, func() {}
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			log.Printf("❌ Failed to close Kafka producer: %v", err)
		}
	}
}
