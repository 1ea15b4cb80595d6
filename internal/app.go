package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"shiftplan/internal/controllers"
	"shiftplan/internal/providers"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server

	conf     *structures.Config
	logger   providers.Logger
	wrapper  *storage.Wrapper
	migrator *storage.Migrator
	status   services.StatusServiceInterface
}

func NewApp(
	healthController *controllers.HealthController,
	wrapper *storage.Wrapper,
	migrator *storage.Migrator,
	status services.StatusServiceInterface,
	conf *structures.Config,
	logger providers.Logger,
	router providers.RouterProviderInterface,
	metrics providers.MetricsProviderInterface,
) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, logger, apiMux))

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:     conf,
		logger:   logger,
		wrapper:  wrapper,
		migrator: migrator,
		status:   status,
	}
}

// Start selects the storage backend and, when enabled, migrates legacy data.
// It never fails: problems end up in fallback mode and in the status notice.
func (a *App) Start(ctx context.Context) {
	mode := a.wrapper.Init(ctx)
	a.logger.Infof(providers.TypeApp, "Storage mode: %s", mode)

	if a.conf.Migration.Enabled {
		a.status.SetMigrationReport(a.migrator.Run(ctx))
	}
	if notice := a.status.Notice(); notice != "" {
		a.logger.Warnf(providers.TypeApp, "%s", notice)
	}
}

// Run serves HTTP until SIGINT or SIGTERM and then shuts down gracefully.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	a.Start(context.Background())

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := a.wrapper.Shutdown(); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
