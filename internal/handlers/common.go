package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// RoleHeader carries the caller's council role. Authentication is
// handled upstream; by the time a request reaches these handlers the
// header is trusted.
const RoleHeader = "X-Council-Role"

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// errorStatus maps engine and runner errors onto HTTP statuses.
// Validation failures are 400/404, precondition failures 409, and a
// failed narrative call 502 so clients know to retry.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, sim.ErrUnknownAction),
		errors.Is(err, sim.ErrUnknownIssue),
		errors.Is(err, sim.ErrUnknownRegion):
		return http.StatusNotFound
	case errors.Is(err, sim.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, sim.ErrInvalidChoice),
		errors.Is(err, sim.ErrRegionRequired),
		errors.Is(err, sim.ErrUnknownVariable):
		return http.StatusBadRequest
	case errors.Is(err, sim.ErrOnCooldown),
		errors.Is(err, sim.ErrExhaustedUses),
		errors.Is(err, sim.ErrNoActiveIssue),
		errors.Is(err, sim.ErrStaleResolution),
		errors.Is(err, sim.ErrGameNotActive),
		errors.Is(err, services.ErrGameBusy):
		return http.StatusConflict
	case errors.Is(err, sim.ErrNarrativeUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError logs and renders an error from the runner/engine.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Unexpected error", "error", err)
		writeError(w, logger, status, "Internal server error")
		return
	}
	logger.Debug("Request rejected", "error", err, "status", status)
	writeError(w, logger, status, err.Error())
}
