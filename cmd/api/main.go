package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jwebster45206/kingdom-council/internal/config"
	"github.com/jwebster45206/kingdom-council/internal/handlers"
	"github.com/jwebster45206/kingdom-council/internal/logger"
	"github.com/jwebster45206/kingdom-council/internal/middleware"
	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/internal/storage"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Kingdom Council API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"narrative_provider", cfg.NarrativeProvider,
		"narrative_model", cfg.NarrativeModel)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	content, err := store.LoadContent(storageCtx)
	if err != nil {
		log.Error("Failed to load seed content", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	var narrative sim.Narrative
	switch strings.ToLower(cfg.NarrativeProvider) {
	case "anthropic":
		if cfg.NarrativeAPIKey == "" {
			log.Error("Narrative API key is required when using anthropic provider")
			os.Exit(1)
		}
		narrative = services.NewAnthropicNarrative(cfg.NarrativeAPIKey, cfg.NarrativeModel, log)
		log.Info("Using Anthropic narrative provider")
	case "mock":
		// Deterministic outcomes for local development.
		narrative = services.NewMockNarrative()
		log.Info("Using mock narrative provider")
	default:
		log.Error("Invalid narrative provider specified", "provider", cfg.NarrativeProvider, "supported", []string{"anthropic", "mock"})
		os.Exit(1)
	}

	engine := sim.NewEngine(content, narrative, log)
	runner := services.NewGameRunner(store, engine, store.Client(), log, "api-"+cfg.Port)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/v1/health", healthHandler)

	gameHandler := handlers.NewGameHandler(runner, log)
	mux.Handle("/v1/games", gameHandler)
	mux.Handle("/v1/games/", gameHandler)

	handler := middleware.Logger(mux, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second, // narrative calls can run long
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
