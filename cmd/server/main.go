// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/database"
	"github.com/onboarding/kyc-admin/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Admin datastore: owned by this service, migrated and seeded here.
	adminDB, err := database.Initialize(cfg.AdminDatabase)
	if err != nil {
		log.Fatal("Failed to initialize admin database:", err)
	}
	defer database.Close(adminDB)

	if err := database.RunMigrations(adminDB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := database.SeedInitialData(adminDB); err != nil {
		log.Fatal("Failed to seed initial data:", err)
	}

	// KYC datastore: owned by the onboarding system, read here and
	// never migrated.
	kycDB, err := database.Initialize(cfg.KycDatabase)
	if err != nil {
		log.Fatal("Failed to initialize KYC database:", err)
	}
	defer database.Close(kycDB)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(kycDB, adminDB, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
