package internal

import (
	"net/http"
	"net/http/httptest"
	"shiftplan/internal/controllers"
	"shiftplan/internal/providers"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
	"shiftplan/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeTestConfig() *structures.Config {
	return &structures.Config{
		Storage: structures.StorageConfig{PrimaryEnabled: true, OpenTimeout: time.Second},
		Share:   structures.ShareConfig{BaseURL: "http://localhost:8080/view", PollInterval: 30 * time.Second},
	}
}

func routeTestRouter(conf *structures.Config) providers.RouterProviderInterface {
	logger := &testutil.MockLogger{}
	wrapper := storage.NewWrapper(conf, testutil.NewMockBackend(), testutil.NewMockBackend(), testutil.NewMockCache(), testutil.NewMockMetrics(), logger)
	service := services.NewScheduleService(conf, wrapper, logger)

	return InitRoutes(
		controllers.NewApiController(logger, service),
		controllers.NewRemoteController(logger, testutil.NewMockBackend()),
		controllers.NewShareController(conf, logger, service),
		conf,
	)
}

func routeTestMux(conf *structures.Config) *http.ServeMux {
	router := routeTestRouter(conf)
	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	routes := routeTestRouter(routeTestConfig()).GetRoutes()
	require.Len(t, routes, 8)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	assert.ElementsMatch(t, []string{
		"/api/snapshots", "/api/hours", "/api/coverage",
		"/api/storage", "/api/storage/export", "/api/storage/clear",
		"/api/schedule", "/view",
	}, urls)
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux := routeTestMux(routeTestConfig())

	req := httptest.NewRequest(http.MethodPut, "/api/snapshots?month=1&year=2025", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Header().Get("Allow"), http.MethodDelete)

	req = httptest.NewRequest(http.MethodGet, "/api/storage/clear", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInitRoutes_SaveThenView(t *testing.T) {
	mux := routeTestMux(routeTestConfig())

	body := `{"employees":[{"id":"1","name":"Adrian","color":"bg-green-200"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/snapshots?month=7&year=2025", strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/view?view=readonly&month=7&year=2025&hash=bogus", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"outcome":"stale"`)
}

func TestViewRoute(t *testing.T) {
	conf := routeTestConfig()
	assert.Equal(t, "/view", viewRoute(conf))

	conf.Share.BaseURL = "https://plan.example.com/share/month"
	assert.Equal(t, "/share/month", viewRoute(conf))

	conf.Share.BaseURL = ""
	assert.Equal(t, "/view", viewRoute(conf))
}
