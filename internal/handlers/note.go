package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// SendNoteRequest passes a private note to another council role.
type SendNoteRequest struct {
	RecipientRole string `json:"recipient_role"`
	Content       string `json:"content"`
}

func (h *GameHandler) routeNotes(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	roleID := r.Header.Get(RoleHeader)
	if roleID == "" {
		writeError(w, h.logger, http.StatusBadRequest, RoleHeader+" header is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		notes, err := h.runner.NotesFor(r.Context(), gameID, roleID)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, notes)

	case http.MethodPost:
		var req SendNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Warn("Invalid JSON in request body", "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
		if req.RecipientRole == "" || req.Content == "" {
			writeError(w, h.logger, http.StatusBadRequest, "recipient_role and content fields are required")
			return
		}

		note, err := h.runner.SendNote(r.Context(), gameID, roleID, req.RecipientRole, req.Content)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusCreated, note)

	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST")
	}
}
