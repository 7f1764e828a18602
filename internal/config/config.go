package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	// Narrative collaborator settings.
	NarrativeProvider string
	NarrativeAPIKey   string
	NarrativeModel    string

	// Worker settings.
	WorkerID string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		DataDir:  getEnv("DATA_DIR", "./data"),

		NarrativeProvider: getEnv("NARRATIVE_PROVIDER", "anthropic"),
		NarrativeAPIKey:   getEnv("NARRATIVE_API_KEY", ""),
		NarrativeModel:    getEnv("NARRATIVE_MODEL", "claude-sonnet-4-20250514"),

		WorkerID: getEnv("WORKER_ID", "worker-1"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
