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

	"dorm-management-backend/config"
	"dorm-management-backend/internal/api"
	"dorm-management-backend/internal/db"
	"dorm-management-backend/internal/lifecycle"
	"dorm-management-backend/internal/scheduler"
	"dorm-management-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "dorm-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)

	rooms := lifecycle.NewRoomService(appStore)
	reservations := lifecycle.NewReservationService(appStore)
	contracts := lifecycle.NewContractService(appStore, cfg.Policy.ExpiringMaxDays)
	invoices := lifecycle.NewInvoiceService(appStore)
	students := lifecycle.NewStudentService(appStore)

	var billing *scheduler.Billing
	if cfg.Billing.Enabled {
		billing, err = scheduler.NewBilling(invoices, cfg.Billing.Cron)
		if err != nil {
			logger.Fatalf("failed to initialize billing scheduler: %v", err)
		}
		billing.Start()
	}

	handler := api.NewHandler(rooms, reservations, contracts, invoices, students)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	if billing != nil {
		if err := billing.Shutdown(); err != nil {
			logger.Printf("billing scheduler shutdown: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
