package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jwebster45206/kingdom-council/internal/config"
	"github.com/jwebster45206/kingdom-council/internal/logger"
	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/internal/services/queue"
	"github.com/jwebster45206/kingdom-council/internal/storage"
	"github.com/jwebster45206/kingdom-council/internal/worker"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Kingdom Council Worker",
		"environment", cfg.Environment,
		"worker_id", cfg.WorkerID,
		"redis_url", cfg.RedisURL)

	// Initialize queue service
	queueClient, err := queue.NewClient(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()

	councilQueue := queue.NewCouncilQueue(queueClient)
	log.Info("Queue service initialized successfully")

	// Initialize storage service
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
	log.Info("Storage service initialized successfully")

	content, err := store.LoadContent(storageCtx)
	if err != nil {
		log.Error("Failed to load seed content", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	// Initialize narrative service
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
		narrative = services.NewMockNarrative()
		log.Info("Using mock narrative provider")
	default:
		log.Error("Invalid narrative provider specified", "provider", cfg.NarrativeProvider, "supported", []string{"anthropic", "mock"})
		os.Exit(1)
	}

	engine := sim.NewEngine(content, narrative, log)
	runner := services.NewGameRunner(store, engine, store.Client(), log, cfg.WorkerID)

	w := worker.New(councilQueue, runner, log, cfg.WorkerID)

	go func() {
		if err := w.Start(); err != nil {
			log.Error("Worker failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Worker is shutting down...")
	w.Stop()

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Worker exited")
}
