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
	"github.com/sirupsen/logrus"

	"github.com/aniefioke/intellectual-property/internal/config"
	"github.com/aniefioke/intellectual-property/internal/database"
	"github.com/aniefioke/intellectual-property/internal/events"
	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/payments"
	"github.com/aniefioke/intellectual-property/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Structured logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Payment rail
	var executor marketplace.PaymentExecutor
	switch cfg.Payment.Executor {
	case "stripe":
		executor = payments.NewStripeExecutor(cfg)
	default:
		executor = payments.NewMemoryExecutor()
	}

	// The ledger clock: one time unit per configured tick of wall time.
	clock := marketplace.NewTickClock(time.Now(), time.Duration(cfg.Marketplace.TickSeconds)*time.Second)

	ledger := marketplace.NewLedger(
		marketplace.Principal(cfg.Marketplace.AdminAddress),
		clock,
		executor,
	)

	// Optional durable store: rehydrate the ledger, then write through.
	var store *database.Store
	if cfg.Database.Enabled {
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}

		store = database.NewStore(db)
		snapshot, err := store.LoadSnapshot()
		if err != nil {
			log.Fatal("Failed to load ledger snapshot:", err)
		}
		ledger.Restore(snapshot)
		ledger.AttachPersister(store)
	}

	// Event side-channel: log line, bounded feed, websocket fan-out.
	feed := events.NewFeed(cfg.Marketplace.EventFeedSize)
	hub := events.NewHub()
	ledger.AttachSink(events.Multi{events.LogSink{}, feed, hub})

	m := metrics.New()
	m.UpdateAggregates(ledger.Metrics())

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r, err := router.Initialize(router.Deps{
		Config:  cfg,
		Ledger:  ledger,
		Store:   store,
		Feed:    feed,
		Hub:     hub,
		Metrics: m,
	})
	if err != nil {
		log.Fatal("Failed to initialize router:", err)
	}

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
