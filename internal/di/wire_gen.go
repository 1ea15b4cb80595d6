//go:build !wireinject
// +build !wireinject

package di

import (
	"shiftplan/internal"
	"shiftplan/internal/controllers"
	"shiftplan/internal/providers"
	"shiftplan/internal/remote"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
)

// Injectors for the graphs declared in injectors.go. Keep the two files in
// step when a provider is added or its signature changes.

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {
	config, err := providers.NewConfigProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger, cleanup, err := newLogger(config)
	if err != nil {
		return nil, nil, err
	}
	metricsProviderInterface := providers.NewMetricsProvider(config)
	sqLiteStore := newPrimaryStore(config)
	fileStore, cleanup2, err := newLegacyStore(config)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cacheProviderInterface := providers.NewInstrumentedCacheProvider(config, logger, metricsProviderInterface)
	wrapper := storage.NewWrapper(config, sqLiteStore, fileStore, cacheProviderInterface, metricsProviderInterface, logger)
	statusServiceInterface := services.NewStatusService(wrapper)
	healthController := controllers.NewHealthController(statusServiceInterface)
	migrator := newMigrator(config, wrapper, fileStore, metricsProviderInterface, logger)
	scheduleServiceInterface := services.NewScheduleService(config, wrapper, logger)
	apiController := controllers.NewApiController(logger, scheduleServiceInterface)
	store, cleanup3, err := remote.NewStore(config, logger)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	remoteController := controllers.NewRemoteController(logger, store)
	loader := newShareLoader(scheduleServiceInterface)
	shareController := controllers.NewShareController(config, logger, loader)
	routerProviderInterface := internal.InitRoutes(apiController, remoteController, shareController, config)
	app := internal.NewApp(healthController, wrapper, migrator, statusServiceInterface, config, logger, routerProviderInterface, metricsProviderInterface)
	return app, func() {
		cleanup3()
		cleanup2()
		cleanup()
	}, nil
}

func InitViewer(cfg *structures.CliFlags) (*internal.ViewerApp, error) {
	logger := newViewerLogger(cfg)
	viewerApp, err := internal.NewViewerApp(cfg, logger)
	if err != nil {
		return nil, err
	}
	return viewerApp, nil
}
