package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// Storage persists game documents and serves static content.
// Game documents are Redis-backed; the content bundle is read from
// seed files on the filesystem.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Game operations (Redis-backed)
	SaveGame(ctx context.Context, id uuid.UUID, g *sim.Game) error

	// LoadGame retrieves a game by UUID.
	// Returns nil if the game doesn't exist.
	LoadGame(ctx context.Context, id uuid.UUID) (*sim.Game, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error

	// LoadContent reads and validates the seed content bundle
	// (filesystem-backed).
	LoadContent(ctx context.Context) (*kingdom.Content, error)
}
