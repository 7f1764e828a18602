package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

func (h *GameHandler) routeRegions(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, rest []string) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}
	if len(rest) != 1 || rest[0] == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Region ID is required")
		return
	}

	roleID := r.Header.Get(RoleHeader)
	if roleID == "" {
		writeError(w, h.logger, http.StatusBadRequest, RoleHeader+" header is required")
		return
	}

	g, err := h.runner.Game(r.Context(), gameID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	view, err := h.runner.Engine().RegionView(g, rest[0], roleID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, view)
}
