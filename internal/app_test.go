package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"shiftplan/internal/controllers"
	"shiftplan/internal/models"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
	"shiftplan/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	app     *App
	primary *testutil.MockBackend
	legacy  *testutil.MockBackend
	wrapper *storage.Wrapper
	status  services.StatusServiceInterface
	logger  *testutil.MockLogger
}

func newAppFixture(conf *structures.Config) *appFixture {
	f := &appFixture{
		primary: testutil.NewMockBackend(),
		legacy:  testutil.NewMockBackend(),
		logger:  &testutil.MockLogger{},
	}
	metrics := testutil.NewMockMetrics()
	f.wrapper = storage.NewWrapper(conf, f.primary, f.legacy, testutil.NewMockCache(), metrics, f.logger)
	migrator := storage.NewMigrator(conf, f.wrapper, f.legacy, models.IsScheduleDomainKey, metrics, f.logger)
	f.status = services.NewStatusService(f.wrapper)
	f.app = NewApp(controllers.NewHealthController(f.status), f.wrapper, migrator, f.status, conf, f.logger, routeTestRouter(conf), metrics)
	return f
}

func appTestConfig() *structures.Config {
	conf := routeTestConfig()
	conf.WebServer = structures.Server{Host: "127.0.0.1", Port: 8090}
	conf.Migration = structures.MigrationConfig{Enabled: true, ProbeKey: "migration-test"}
	return conf
}

func TestNewApp_Handler(t *testing.T) {
	f := newAppFixture(appTestConfig())
	assert.Equal(t, "127.0.0.1:8090", f.app.WebServer.Addr)

	rr := httptest.NewRecorder()
	f.app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	f.app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/snapshots?month=1&year=2025", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	// metrics are disabled in this config
	rr = httptest.NewRecorder()
	f.app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_StartMigratesLegacyData(t *testing.T) {
	f := newAppFixture(appTestConfig())
	ctx := context.Background()
	require.NoError(t, f.legacy.Put(ctx, "schedule-7-2025", `{"employees":[]}`))
	require.NoError(t, f.legacy.Put(ctx, "theme", "dark"))

	f.app.Start(ctx)

	assert.Equal(t, storage.ModePrimaryActive, f.wrapper.Mode())
	report, ok := f.status.MigrationReport()
	require.True(t, ok)
	assert.True(t, report.Success)
	assert.Equal(t, []string{"schedule-7-2025"}, report.MigratedKeys)

	v, found := f.primary.Value("schedule-7-2025")
	assert.True(t, found)
	assert.Equal(t, `{"employees":[]}`, v)
	_, found = f.primary.Value("theme")
	assert.False(t, found)
	_, found = f.primary.Value("migration-test")
	assert.False(t, found)
	assert.Empty(t, f.status.Notice())
}

func TestApp_StartFallsBackWhenPrimaryUnavailable(t *testing.T) {
	f := newAppFixture(appTestConfig())
	f.primary.FailOn("open")

	f.app.Start(context.Background())

	assert.Equal(t, storage.ModeFallbackActive, f.wrapper.Mode())
	report, ok := f.status.MigrationReport()
	require.True(t, ok)
	assert.False(t, report.Verified)
	assert.NotEmpty(t, f.status.Notice())
	assert.Positive(t, f.logger.Count("warn"))
}

func TestApp_StartWithoutMigration(t *testing.T) {
	conf := appTestConfig()
	conf.Migration.Enabled = false
	f := newAppFixture(conf)
	require.NoError(t, f.legacy.Put(context.Background(), "schedule-1-2025", "{}"))

	f.app.Start(context.Background())

	_, ok := f.status.MigrationReport()
	assert.False(t, ok)
	assert.Empty(t, f.primary.Data)
}
