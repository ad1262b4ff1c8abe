package handlers

import "net/http"

// HealthHandler reports that the readygate process itself is alive.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StatusResponse{Status: "healthy"})
}
