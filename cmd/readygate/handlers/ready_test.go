package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hairizuanbinnoorazman/readygate/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp StatusResponse
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp.Status
}

func TestStatusHandler_Ready(t *testing.T) {
	tracker := gate.NewTracker("http://api:8000/health")
	h := &StatusHandler{Tracker: tracker}

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "waiting", decodeStatus(t, rec))

	tracker.Finish(gate.StateHandedOff)

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeStatus(t, rec))
}

func TestStatusHandler_ReadyGaveUp(t *testing.T) {
	tracker := gate.NewTracker("http://api:8000/health")
	tracker.Finish(gate.StateGaveUp)
	h := &StatusHandler{Tracker: tracker}

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "gave_up", decodeStatus(t, rec))
}

func TestStatusHandler_Status(t *testing.T) {
	tracker := gate.NewTracker("http://api:8000/health")
	tracker.RecordAttempt(errors.New("connection refused"))
	h := &StatusHandler{Tracker: tracker}

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap gate.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, "http://api:8000/health", snap.Target)
	assert.Equal(t, "polling", snap.State)
	assert.Equal(t, 1, snap.Attempts)
	assert.Equal(t, "connection refused", snap.LastError)
	assert.Nil(t, snap.FinishedAt)
}
