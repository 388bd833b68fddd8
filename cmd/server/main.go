package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/dmedarov/villageride/internal/app"
	"github.com/dmedarov/villageride/internal/config"
	"github.com/dmedarov/villageride/internal/handler"
	"github.com/dmedarov/villageride/internal/repository/postgres"
	"github.com/dmedarov/villageride/internal/service"
)

func main() {
	// Load .env if present, then configuration from the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// One-time schema migration and admin seed at startup.
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	if err := service.SeedAdmin(ctx, postgres.NewAdminUserRepository(db), cfg.Admin.SeedUsername, cfg.Admin.SeedPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	// Initialize Redis. The board runs without it, minus idempotent retries.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Printf("redis unavailable, idempotency disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize repositories.
	rideRepo := postgres.NewRideRepository(db)
	requestRepo := postgres.NewRideRequestRepository(db)
	adminRepo := postgres.NewAdminUserRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)

	// Initialize services.
	auditSink := service.NewAuditRecorder(auditRepo)
	boardService := service.NewBoardService(rideRepo, requestRepo)
	submissionService := service.NewSubmissionService(db, rideRepo, requestRepo, auditSink)
	adminService := service.NewAdminService(adminRepo, auditRepo, rideRepo, requestRepo, auditSink)

	// Initialize handlers.
	boardHandler := handler.NewBoardHandler(boardService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	adminHandler := handler.NewAdminHandler(adminService, boardService, cfg.Admin)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		BoardHandler:      boardHandler,
		SubmissionHandler: submissionHandler,
		AdminHandler:      adminHandler,
		AdminConfig:       cfg.Admin,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
