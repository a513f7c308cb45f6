package controllers

import (
	"donosync/internal/providers"
	"donosync/internal/services"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	connection ConnectionStateReader
	session    services.SessionServiceInterface
	cache      providers.CacheProviderInterface
	startTime  time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Connection    string  `json:"connection"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	HasMessage    bool    `json:"has_message"`
	Version       uint64  `json:"version"`
	CacheEntries  int64   `json:"cache_entries"`
}

// Health reports 503 once the stream connection is closed for good, since
// the process can no longer receive updates.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	state := hc.connection.State()
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Connection:    state.Phase.String(),
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		HasMessage:    hc.session.Message() != nil,
		Version:       hc.session.Version(),
		CacheEntries:  hc.cache.EntryCount(),
	}
	code := http.StatusOK
	if state.Terminal() {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, code, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(connection ConnectionStateReader, session services.SessionServiceInterface, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		connection: connection,
		session:    session,
		cache:      cache,
		startTime:  time.Now(),
	}
}
