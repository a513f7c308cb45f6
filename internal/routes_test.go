package internal

import (
	"donosync/internal/controllers"
	"donosync/internal/models"
	"donosync/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestSession struct{}

func (m *routeTestSession) HandleFrame(_ int, _ []byte) error { return nil }
func (m *routeTestSession) Message() *models.Snapshot         { return nil }
func (m *routeTestSession) Spotlight() models.SpotlightState  { return models.SpotlightState{} }
func (m *routeTestSession) Version() uint64                   { return 0 }
func (m *routeTestSession) SubscribeMessage(_ func(*models.Snapshot)) func() {
	return func() {}
}

func newRouteTestController() *controllers.ApiController {
	return controllers.NewApiController(&testutil.MockLogger{}, &routeTestSession{}, &testutil.MockConnection{}, testutil.NewMockCache())
}

func TestInitRoutes_RegistersThreeRoutes(t *testing.T) {
	router := InitRoutes(newRouteTestController())
	routes := router.GetRoutes()

	require.Len(t, routes, 3)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/message")
	assert.Contains(t, urls, "/celebration")
	assert.Contains(t, urls, "/status")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	router := InitRoutes(newRouteTestController())

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	for _, url := range []string{"/message", "/celebration", "/status"} {
		req := httptest.NewRequest(http.MethodPost, url, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, url)
	}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
