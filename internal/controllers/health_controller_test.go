package controllers

import (
	"donosync/internal/models"
	"donosync/internal/testutil"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	conn := &testutil.MockConnection{Current: models.ConnectionState{Phase: models.PhaseOpen}}
	cache := testutil.NewMockCache()
	cache.Set("message:4", []byte("{}"))
	hc := NewHealthController(conn, &mockSession{message: sampleSnapshot(), version: 4}, cache)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "open", resp["connection"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, true, resp["has_message"])
	assert.Equal(t, float64(4), resp["version"])
	assert.Equal(t, float64(1), resp["cache_entries"])
}

func TestHealth_ReconnectingIsStillHealthy(t *testing.T) {
	conn := &testutil.MockConnection{Current: models.ConnectionState{Phase: models.PhaseReconnecting, Attempt: 1}}
	hc := NewHealthController(conn, &mockSession{}, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealth_ClosedIsUnavailable(t *testing.T) {
	conn := &testutil.MockConnection{Current: models.ConnectionState{Phase: models.PhaseClosed}}
	hc := NewHealthController(conn, &mockSession{}, testutil.NewMockCache())

	rr := httptest.NewRecorder()
	hc.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "unavailable", resp["status"])
	assert.Equal(t, false, resp["has_message"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&testutil.MockConnection{}, &mockSession{}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
}

func TestHealth_AcceptsHead(t *testing.T) {
	hc := NewHealthController(&testutil.MockConnection{}, &mockSession{}, testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
