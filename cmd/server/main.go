package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "roomledger-backend/internal/api/http"
	"roomledger-backend/internal/config"
	"roomledger-backend/internal/logger"
	"roomledger-backend/internal/repository/postgres"
	"roomledger-backend/internal/security"
	"roomledger-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RoomLedger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Seed the settings row and default admin on an empty database
	if err := service.Bootstrap(context.Background(), store.UserRepository, store.SettingsRepository); err != nil {
		logger.Error("Failed to bootstrap initial data", "error", err)
		log.Fatalf("Failed to bootstrap initial data: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.Mail.SendGridAPIKey,
		cfg.Mail.FromEmail,
		cfg.Mail.FromName,
	)
	leaseSvc := service.NewLeaseService(
		store.LeaseRepository,
		store.RoomRepository,
		store.TenantRepository,
		store.ExpenseRepository,
	)
	svcs := httpapi.Services{
		Auth:    service.NewAuthService(store.UserRepository, tokenManager),
		Users:   service.NewUserService(store.UserRepository),
		Catalog: service.NewCatalogService(store.BuildingRepository, store.RoomRepository, store.LeaseRepository, store.TenantRepository),
		Tenants: service.NewTenantService(store.TenantRepository, store.LeaseRepository, store.PaymentRepository),
		Leases:  leaseSvc,
		Billing: service.NewBillingService(
			store.PaymentRepository,
			store.ExpenseRepository,
			store.LeaseRepository,
			store.RoomRepository,
			store.BuildingRepository,
			store.TenantRepository,
			emailService,
		),
		Settings:  service.NewSettingsService(store.SettingsRepository),
		Dashboard: service.NewDashboardService(store.RoomRepository, store.LeaseRepository, store.PaymentRepository),
	}

	router := httpapi.NewRouter(svcs, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
