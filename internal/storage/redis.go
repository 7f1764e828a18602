package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// RedisStorage implements the Storage interface using Redis for game
// documents and the filesystem for static seed content.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opt),
		logger:  logger,
		dataDir: dataDir,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Client returns the underlying Redis client, used by the runner for
// per-game locks.
func (r *RedisStorage) Client() *redis.Client {
	return r.client
}

// Game operations (Redis-backed)

func gameKey(id uuid.UUID) string {
	return "game:" + id.String()
}

func (r *RedisStorage) SaveGame(ctx context.Context, id uuid.UUID, g *sim.Game) error {
	g.UpdatedAt = time.Now()

	data, err := json.Marshal(g)
	if err != nil {
		r.logger.Error("Failed to marshal game", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	if err := r.client.Set(ctx, gameKey(id), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save game", "uuid", id, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadGame(ctx context.Context, id uuid.UUID) (*sim.Game, error) {
	cmd := r.client.Get(ctx, gameKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Game not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load game", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		r.logger.Warn("Game not found", "uuid", id)
		return nil, nil
	}

	var g sim.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		r.logger.Error("Failed to unmarshal game", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &g, nil
}

func (r *RedisStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, gameKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete game", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

// Content operations (filesystem-backed)

// LoadContent reads the seed bundle from the data directory. Each
// slice lives in its own file; optional files may be absent. Triggers
// are decoded row by row so one malformed condition expression is
// logged and skipped instead of rejecting the whole bundle.
func (r *RedisStorage) LoadContent(ctx context.Context) (*kingdom.Content, error) {
	content := &kingdom.Content{}

	required := []struct {
		file string
		dst  interface{}
	}{
		{"variables.json", &content.Variables},
		{"regions.json", &content.Regions},
		{"npcs.json", &content.NPCs},
		{"attitudes.json", &content.Attitudes},
		{"actions.json", &content.Actions},
		{"issues.json", &content.Issues},
	}
	for _, f := range required {
		if err := r.readJSON(f.file, f.dst, true); err != nil {
			return nil, err
		}
	}

	optional := []struct {
		file string
		dst  interface{}
	}{
		{"role_info.json", &content.RoleInfo},
		{"historical_events.json", &content.Events},
	}
	for _, f := range optional {
		if err := r.readJSON(f.file, f.dst, false); err != nil {
			return nil, err
		}
	}

	triggers, err := r.loadTriggers()
	if err != nil {
		return nil, err
	}
	content.Triggers = triggers

	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed content: %w", err)
	}

	r.logger.Info("Seed content loaded",
		"regions", len(content.Regions),
		"npcs", len(content.NPCs),
		"triggers", len(content.Triggers),
		"actions", len(content.Actions),
		"issues", len(content.Issues))
	return content, nil
}

func (r *RedisStorage) readJSON(filename string, dst interface{}, required bool) error {
	path := filepath.Join(r.dataDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return nil
}

// loadTriggers decodes triggers.json one row at a time. A row with a
// malformed condition expression never matches anything, so it is
// dropped here with a warning rather than failing startup.
func (r *RedisStorage) loadTriggers() ([]kingdom.Trigger, error) {
	path := filepath.Join(r.dataDir, "triggers.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read triggers.json: %w", err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal triggers.json: %w", err)
	}

	triggers := make([]kingdom.Trigger, 0, len(rows))
	for i, row := range rows {
		var t kingdom.Trigger
		if err := json.Unmarshal(row, &t); err != nil {
			r.logger.Warn("Skipping malformed trigger", "index", i, "error", err)
			continue
		}
		triggers = append(triggers, t)
	}
	return triggers, nil
}
