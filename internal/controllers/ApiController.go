package controllers

import (
	"donosync/internal/models"
	"donosync/internal/providers"
	"donosync/internal/services"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// ConnectionStateReader is the read side of the stream connection.
type ConnectionStateReader interface {
	State() models.ConnectionState
}

type ApiController struct {
	logger     providers.Logger
	session    services.SessionServiceInterface
	connection ConnectionStateReader
	cache      providers.CacheProviderInterface
}

type celebrationResponse struct {
	Celebration *models.Donation `json:"celebration"`
	DonorTotal  *float64         `json:"donor_total,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

type statusResponse struct {
	Status  models.ConnectionStatus `json:"status"`
	Phase   string                  `json:"phase"`
	Attempt int                     `json:"attempt"`
	Error   string                  `json:"error,omitempty"`
}

func NewApiController(logger providers.Logger, session services.SessionServiceInterface, connection ConnectionStateReader, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		session:    session,
		connection: connection,
		cache:      cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.logger.Errorf(providers.TypeHTTP, "Compute %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		ac.logger.Errorf(providers.TypeHTTP, "Marshal %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) versionKey(prefix string) string {
	return prefix + ":" + strconv.FormatUint(ac.session.Version(), 10)
}

// GetMessage serves the latest snapshot, or 404 before the first one arrived.
func (ac *ApiController) GetMessage(w http.ResponseWriter, r *http.Request) {
	key := ac.versionKey("message")
	msg := ac.session.Message()
	if msg == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return msg, nil
	})
}

func (ac *ApiController) GetCelebration(w http.ResponseWriter, r *http.Request) {
	key := ac.versionKey("celebration")
	state := ac.session.Spotlight()
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		if !state.Active() {
			return celebrationResponse{}, nil
		}
		return celebrationResponse{
			Celebration: &state.Value.Donation,
			DonorTotal:  state.Value.DonorTotal,
			ExpiresAt:   state.ExpiresAt,
		}, nil
	})
}

func (ac *ApiController) GetStatus(w http.ResponseWriter, r *http.Request) {
	state := ac.connection.State()
	gson, err := json.Marshal(statusResponse{
		Status:  state.Status(),
		Phase:   state.Phase.String(),
		Attempt: state.Attempt,
		Error:   state.Err,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, gson)
}
