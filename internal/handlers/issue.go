package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// IssueView is the current issue plus its per-game status.
type IssueView struct {
	IssueID     string      `json:"issue_id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
	RegionID    string      `json:"region_id,omitempty"`
	Resolutions interface{} `json:"resolutions,omitempty"`
	Round       int         `json:"round"`
	Active      bool        `json:"active"`
}

// ResolveIssueRequest submits the council's choice for the active issue.
type ResolveIssueRequest struct {
	IssueID string `json:"issue_id"`
	Choice  string `json:"choice"`
}

func (h *GameHandler) routeIssue(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		h.handleGetIssue(w, r, gameID)
	case len(rest) == 1 && rest[0] == "resolve" && r.Method == http.MethodPost:
		h.handleResolveIssue(w, r, gameID)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Unsupported issue operation")
	}
}

func (h *GameHandler) handleGetIssue(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	g, err := h.runner.Game(r.Context(), gameID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	view := IssueView{Round: g.Round}
	if g.CurrentIssueID != "" {
		view.Active = true
		view.IssueID = g.CurrentIssueID
		view.RegionID = g.CurrentIssueRegionID
		if issue, ok := h.runner.Engine().Content().Issue(g.CurrentIssueID); ok {
			view.Title = issue.Title
			view.Description = issue.Description
			view.Type = issue.Type
			view.Resolutions = issue.Resolutions
		}
	}

	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *GameHandler) handleResolveIssue(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	roleID := r.Header.Get(RoleHeader)
	if roleID == "" {
		writeError(w, h.logger, http.StatusBadRequest, RoleHeader+" header is required")
		return
	}

	var req ResolveIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.IssueID == "" || req.Choice == "" {
		writeError(w, h.logger, http.StatusBadRequest, "issue_id and choice fields are required")
		return
	}

	res, err := h.runner.ResolveIssue(r.Context(), gameID, req.IssueID, roleID, req.Choice)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, res)
}
