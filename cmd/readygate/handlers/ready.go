package handlers

import (
	"net/http"

	"github.com/hairizuanbinnoorazman/readygate/gate"
)

// StatusHandler serves gate progress from a tracker.
type StatusHandler struct {
	Tracker *gate.Tracker
}

// Ready answers 200 once the command has been handed off and 503 otherwise.
func (h *StatusHandler) Ready(w http.ResponseWriter, r *http.Request) {
	switch h.Tracker.State() {
	case gate.StateHandedOff:
		respondJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
	case gate.StateGaveUp:
		respondJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "gave_up"})
	default:
		respondJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "waiting"})
	}
}

// Status returns a JSON snapshot of the tracker.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Tracker.Snapshot())
}
