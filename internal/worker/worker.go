package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/internal/services/queue"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
	queuePkg "github.com/jwebster45206/kingdom-council/pkg/queue"
)

const (
	workerTimeout = 5 * time.Second
)

// Worker consumes council requests from the queue and runs them
// through the game runner. The runner's per-game lock serializes the
// worker against the API, so a request for a busy game is simply
// re-queued.
type Worker struct {
	id     string
	queue  *queue.CouncilQueue
	runner *services.GameRunner
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new worker instance
func New(councilQueue *queue.CouncilQueue, runner *services.GameRunner, log *slog.Logger, workerID string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:     workerID,
		queue:  councilQueue,
		runner: runner,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing requests from the queue
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id)

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		default:
			if err := w.processNextRequest(); err != nil {
				w.log.Error("Error processing request", "error", err, "worker_id", w.id)
				// Continue processing even on error
				time.Sleep(1 * time.Second)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

// processNextRequest pulls the next request from the queue and processes it
func (w *Worker) processNextRequest() error {
	req, err := w.queue.BlockingDequeueRequest(w.ctx, workerTimeout)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to dequeue request: %w", err)
	}

	if req == nil {
		// Queue is empty or timeout occurred - this is normal
		return nil
	}

	w.log.Info("Received request from queue",
		"worker_id", w.id,
		"request_id", req.RequestID,
		"type", req.Type,
		"game_id", req.GameID.String(),
	)

	err = w.processRequest(req)
	if errors.Is(err, services.ErrGameBusy) {
		// Another writer holds the game; put the request back and
		// move on.
		w.log.Info("Game busy, re-queueing request",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"game_id", req.GameID.String(),
		)
		return w.queue.EnqueueRequest(w.ctx, req)
	}
	return err
}

// processRequest runs a single request through the game runner
func (w *Worker) processRequest(req *queuePkg.Request) error {
	start := time.Now()

	switch req.Type {
	case queuePkg.RequestTypeAdvanceRound:
		res, err := w.runner.AdvanceRound(w.ctx, req.GameID)
		if err != nil {
			if errors.Is(err, sim.ErrGameNotActive) || errors.Is(err, services.ErrGameNotFound) {
				// Paused or deleted games just drop their ticks.
				w.log.Info("Skipping round advance",
					"request_id", req.RequestID,
					"game_id", req.GameID.String(),
					"reason", err.Error())
				return nil
			}
			return fmt.Errorf("failed to advance round: %w", err)
		}
		w.log.Info("Round advanced",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"game_id", req.GameID.String(),
			"fired", res.NextIssue != nil,
			"duration_ms", time.Since(start).Milliseconds(),
		)

	case queuePkg.RequestTypeResolveIssue:
		res, err := w.runner.ResolveIssue(w.ctx, req.GameID, req.IssueID, req.RoleID, req.Choice)
		if err != nil {
			if errors.Is(err, sim.ErrStaleResolution) || errors.Is(err, sim.ErrNoActiveIssue) {
				// The issue was resolved some other way while this
				// request waited. Duplicate work is dropped, never
				// replayed.
				w.log.Info("Dropping stale resolution",
					"request_id", req.RequestID,
					"game_id", req.GameID.String(),
					"issue_id", req.IssueID)
				return nil
			}
			return fmt.Errorf("failed to resolve issue: %w", err)
		}
		w.log.Info("Issue resolved",
			"worker_id", w.id,
			"request_id", req.RequestID,
			"game_id", req.GameID.String(),
			"issue_id", req.IssueID,
			"next_issue", res.NextIssue != nil,
			"duration_ms", time.Since(start).Milliseconds(),
		)

	default:
		return fmt.Errorf("unknown request type: %s", req.Type)
	}

	return nil
}
