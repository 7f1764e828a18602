package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/kingdom-council/internal/storage"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// ErrGameNotFound is returned when a game UUID has no document.
var ErrGameNotFound = errors.New("game not found")

// ErrGameBusy is returned when the per-game lock could not be
// acquired within the wait window.
var ErrGameBusy = errors.New("game is busy")

const (
	lockTTL       = 30 * time.Second
	lockWait      = 5 * time.Second
	lockRetryWait = 50 * time.Millisecond
)

// releaseScript deletes the lock only if the caller still owns it.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// GameRunner runs engine operations against persisted games. Every
// mutation happens under a per-game Redis lock in a load-mutate-save
// cycle, so the API and the background worker never write the same
// game concurrently.
type GameRunner struct {
	store  storage.Storage
	engine *sim.Engine
	rdb    *redis.Client
	logger *slog.Logger
	owner  string
}

// NewGameRunner creates a runner. owner identifies this process in
// lock values; pass the worker or instance ID.
func NewGameRunner(store storage.Storage, engine *sim.Engine, rdb *redis.Client, logger *slog.Logger, owner string) *GameRunner {
	if owner == "" {
		owner = "runner-" + uuid.NewString()[:8]
	}
	return &GameRunner{
		store:  store,
		engine: engine,
		rdb:    rdb,
		logger: logger,
		owner:  owner,
	}
}

// Engine exposes the underlying rules engine for read-only use.
func (r *GameRunner) Engine() *sim.Engine {
	return r.engine
}

func lockKey(gameID uuid.UUID) string {
	return "game-lock:" + gameID.String()
}

// acquireLock polls SetNX until the lock is held or the wait window
// closes.
func (r *GameRunner) acquireLock(ctx context.Context, gameID uuid.UUID) error {
	deadline := time.Now().Add(lockWait)
	for {
		ok, err := r.rdb.SetNX(ctx, lockKey(gameID), r.owner, lockTTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire game lock: %w", err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrGameBusy, gameID)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}
}

func (r *GameRunner) releaseLock(ctx context.Context, gameID uuid.UUID) {
	if err := releaseScript.Run(ctx, r.rdb, []string{lockKey(gameID)}, r.owner).Err(); err != nil {
		r.logger.Error("Failed to release game lock", "error", err, "game_id", gameID.String())
	}
}

// withGame runs fn on a freshly loaded game under the per-game lock
// and saves the result. If fn returns an error nothing is saved.
func (r *GameRunner) withGame(ctx context.Context, gameID uuid.UUID, fn func(g *sim.Game) error) error {
	if err := r.acquireLock(ctx, gameID); err != nil {
		return err
	}
	defer r.releaseLock(ctx, gameID)

	g, err := r.store.LoadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	if err := fn(g); err != nil {
		return err
	}

	return r.store.SaveGame(ctx, gameID, g)
}

// CreateGame instantiates a new game from seed content, runs the
// opening trigger scan, and persists it.
func (r *GameRunner) CreateGame(ctx context.Context) (*sim.Game, error) {
	g := sim.NewGame(r.engine.Content())
	if _, err := r.engine.ScanTriggers(g); err != nil {
		return nil, err
	}
	if err := r.store.SaveGame(ctx, g.ID, g); err != nil {
		return nil, err
	}
	r.logger.Info("Game created", "game_id", g.ID.String(), "issue_id", g.CurrentIssueID)
	return g, nil
}

// Game loads a game without taking the lock, for read-only views.
func (r *GameRunner) Game(ctx context.Context, gameID uuid.UUID) (*sim.Game, error) {
	g, err := r.store.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// DeleteGame removes a game document.
func (r *GameRunner) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	return r.store.DeleteGame(ctx, gameID)
}

// SetStatus pauses, resumes or completes a game.
func (r *GameRunner) SetStatus(ctx context.Context, gameID uuid.UUID, status string) (*sim.Game, error) {
	var out *sim.Game
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		switch status {
		case sim.StatusActive, sim.StatusPaused, sim.StatusCompleted:
		default:
			return fmt.Errorf("unknown game status %q", status)
		}
		g.Status = status
		out = g
		return nil
	})
	return out, err
}

// InvokeAction runs a player action against a game.
func (r *GameRunner) InvokeAction(ctx context.Context, gameID uuid.UUID, actionID, roleID, regionID string) (*sim.ActionResult, error) {
	var out *sim.ActionResult
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		res, err := r.engine.InvokeAction(g, actionID, roleID, regionID)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// ResolveIssue settles the active issue for a game.
func (r *GameRunner) ResolveIssue(ctx context.Context, gameID uuid.UUID, issueID, roleID, choice string) (*sim.ResolveResult, error) {
	var out *sim.ResolveResult
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		res, err := r.engine.Resolve(ctx, g, issueID, roleID, choice)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// AdvanceRound moves a game forward one round.
func (r *GameRunner) AdvanceRound(ctx context.Context, gameID uuid.UUID) (*sim.ResolveResult, error) {
	var out *sim.ResolveResult
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		res, err := r.engine.AdvanceRound(g)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

// SendNote appends a private note from one council role to another.
func (r *GameRunner) SendNote(ctx context.Context, gameID uuid.UUID, senderRole, recipientRole, content string) (*kingdom.Note, error) {
	if !kingdom.KnownRole(senderRole) || !kingdom.KnownRole(recipientRole) {
		return nil, fmt.Errorf("%w: unknown role", sim.ErrPermissionDenied)
	}
	note := kingdom.Note{
		SenderRole:    senderRole,
		RecipientRole: recipientRole,
		Content:       content,
		CreatedAt:     time.Now(),
	}
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		g.Notes = append(g.Notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// NotesFor returns the notes visible to one role, marking them read.
func (r *GameRunner) NotesFor(ctx context.Context, gameID uuid.UUID, roleID string) ([]kingdom.Note, error) {
	if !kingdom.KnownRole(roleID) {
		return nil, fmt.Errorf("%w: unknown role %q", sim.ErrPermissionDenied, roleID)
	}
	var out []kingdom.Note
	err := r.withGame(ctx, gameID, func(g *sim.Game) error {
		for i := range g.Notes {
			n := &g.Notes[i]
			if n.RecipientRole == roleID || n.SenderRole == roleID {
				out = append(out, *n)
				if n.RecipientRole == roleID {
					n.IsRead = true
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
