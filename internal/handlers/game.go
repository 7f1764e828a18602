package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

type GameHandler struct {
	runner *services.GameRunner
	logger *slog.Logger
}

func NewGameHandler(runner *services.GameRunner, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		runner: runner,
		logger: logger,
	}
}

// ServeHTTP routes game requests.
// Routes:
// POST /v1/games                            - Create a new game
// GET /v1/games/{id}                        - Read the role-projected game view
// PATCH /v1/games/{id}                      - Update game status (pause/resume/complete)
// DELETE /v1/games/{id}                     - Delete a game
// GET /v1/games/{id}/issue                  - Current issue before the council
// POST /v1/games/{id}/issue/resolve         - Resolve the current issue
// POST /v1/games/{id}/actions               - Invoke a player action
// GET /v1/games/{id}/regions/{regionId}     - Role-scoped region view
// POST /v1/games/{id}/advance               - Advance the round
// GET /v1/games/{id}/notes                  - Notes visible to the caller
// POST /v1/games/{id}/notes                 - Send a note to another role
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	segments := strings.Split(path, "/")
	gameID, err := uuid.Parse(segments[0])
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", segments[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game ID format")
		return
	}

	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, gameID)
		case http.MethodPatch:
			h.handlePatch(w, r, gameID)
		case http.MethodDelete:
			h.handleDelete(w, r, gameID)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, PATCH, DELETE")
		}
		return
	}

	switch segments[1] {
	case "issue":
		h.routeIssue(w, r, gameID, segments[2:])
	case "actions":
		h.routeActions(w, r, gameID)
	case "regions":
		h.routeRegions(w, r, gameID, segments[2:])
	case "advance":
		h.routeAdvance(w, r, gameID)
	case "notes":
		h.routeNotes(w, r, gameID)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown resource: "+segments[1])
	}
}

// GameView is the role-projected rendering of a game document. The
// Regent's attitudes and NPC hidden traits never leave the server.
type GameView struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Round  int       `json:"round"`

	CurrentIssue         *kingdom.Issue `json:"current_issue,omitempty"`
	CurrentIssueRegionID string         `json:"current_issue_region_id,omitempty"`

	Variables map[string]int            `json:"variables"`
	Regions   map[string]kingdom.Region `json:"regions"`
	NPCs      []kingdom.NPCView         `json:"npcs"`

	History   []kingdom.HistoryEntry    `json:"history,omitempty"`
	ActionLog []kingdom.ActionRecord    `json:"action_log,omitempty"`
	Movements []kingdom.Movement        `json:"movements,omitempty"`
	Events    []kingdom.HistoricalEvent `json:"events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *GameHandler) gameView(g *sim.Game) *GameView {
	view := &GameView{
		ID:                   g.ID,
		Status:               g.Status,
		Round:                g.Round,
		CurrentIssueRegionID: g.CurrentIssueRegionID,
		Variables:            make(map[string]int, len(g.Variables)),
		Regions:              make(map[string]kingdom.Region, len(g.Regions)),
		History:              g.History,
		ActionLog:            g.ActionLog,
		Movements:            g.Movements,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
	if g.CurrentIssueID != "" {
		if issue, ok := h.runner.Engine().Content().Issue(g.CurrentIssueID); ok {
			view.CurrentIssue = issue
		}
	}
	for id, v := range g.Variables {
		view.Variables[id] = v.CurrentValue
	}
	for id, reg := range g.Regions {
		view.Regions[id] = *reg
	}
	for _, n := range g.NPCs {
		view.NPCs = append(view.NPCs, n.View())
	}
	for _, ev := range g.Events {
		if ev.IsVisible {
			view.Events = append(view.Events, ev)
		}
	}
	return view
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new game")

	g, err := h.runner.CreateGame(r.Context())
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, h.gameView(g))
}

func (h *GameHandler) handleRead(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	g, err := h.runner.Game(r.Context(), gameID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, h.gameView(g))
}

// PatchGameRequest updates mutable game metadata.
type PatchGameRequest struct {
	Status string `json:"status"`
}

func (h *GameHandler) handlePatch(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	var req PatchGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Status == "" {
		writeError(w, h.logger, http.StatusBadRequest, "status field is required")
		return
	}

	g, err := h.runner.SetStatus(r.Context(), gameID, req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "unknown game status") {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, h.gameView(g))
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if err := h.runner.DeleteGame(r.Context(), gameID); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
