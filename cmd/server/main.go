package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sales-forecast-api/internal/api"
	"github.com/sales-forecast-api/internal/config"
	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/presence"
	"github.com/sales-forecast-api/internal/repository"
	"github.com/sales-forecast-api/internal/service"
	"github.com/sales-forecast-api/pkg/logger"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting sales forecast API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap the legacy-owned tables and seed accounts. Failures
	// are logged, not fatal.
	if err := db.Bootstrap(context.Background()); err != nil {
		log.Error().Err(err).Msg("Schema bootstrap failed")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Start the presence tracker and its eviction sweep
	tracker := presence.NewTracker(presence.DefaultTTL, log)
	tracker.StartSweeper(presence.DefaultSweepInterval)

	// Initialize router
	router := api.NewRouter(services, tracker, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Re-run the bootstrap once the server is up; the existence checks
	// make the double invocation harmless
	go func() {
		if err := db.Bootstrap(context.Background()); err != nil {
			log.Error().Err(err).Msg("Schema bootstrap failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the presence sweeper
	tracker.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
