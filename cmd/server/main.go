package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shubh-Pi/Transaction-management/internal/application/service"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/config"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/db"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/handler"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load config", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	logger.SetDefaultLogger(log)

	log.Info("Starting transaction management API", map[string]interface{}{
		"addr": cfg.Server.Addr,
	})

	// Setup BadgerDB
	var badgerOpts badger.Options
	if cfg.Database.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Database.Dir, 0o755); err != nil {
			log.Fatal("Failed to create database directory", map[string]interface{}{
				"dir":   cfg.Database.Dir,
				"error": err.Error(),
			})
		}
		badgerOpts = badger.DefaultOptions(cfg.Database.Dir)
	}
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	personRepo := db.NewBadgerPersonRepository(badgerDB)
	txRepo := db.NewBadgerTransactionRepository(badgerDB)

	// Initialize services
	personService := service.NewPersonService(personRepo, txRepo, log)
	txService := service.NewTransactionService(txRepo, personRepo, log)

	// Setup router and handlers
	router := handler.NewRouter()
	handler.NewPersonHandler(personService, log).RegisterRoutes(router)
	handler.NewTransactionHandler(txService, log).RegisterRoutes(router)

	chain := middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(log)(
			middleware.CORSMiddleware(
				middleware.RecoveryMiddleware(log)(router))))

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: chain,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.Server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", map[string]interface{}{"error": err.Error()})
	}
	if err := badgerDB.Close(); err != nil {
		log.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
	}
}
