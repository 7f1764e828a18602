package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// InvokeActionRequest invokes one of the caller's role actions.
type InvokeActionRequest struct {
	ActionID string `json:"action_id"`
	RegionID string `json:"region_id,omitempty"`
}

func (h *GameHandler) routeActions(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	roleID := r.Header.Get(RoleHeader)
	if roleID == "" {
		writeError(w, h.logger, http.StatusBadRequest, RoleHeader+" header is required")
		return
	}

	var req InvokeActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ActionID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "action_id field is required")
		return
	}

	res, err := h.runner.InvokeAction(r.Context(), gameID, req.ActionID, roleID, req.RegionID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, res)
}
