package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

func (h *GameHandler) routeAdvance(w http.ResponseWriter, r *http.Request, gameID uuid.UUID) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	res, err := h.runner.AdvanceRound(r.Context(), gameID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, res)
}
