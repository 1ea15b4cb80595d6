//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"shiftplan/internal"
	"shiftplan/internal/controllers"
	"shiftplan/internal/providers"
	"shiftplan/internal/remote"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		newLogger,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		newPrimaryStore,
		newLegacyStore,
		wire.Bind(new(storage.PrimaryBackend), new(*storage.SQLiteStore)),
		wire.Bind(new(storage.LegacyBackend), new(*storage.FileStore)),
		storage.NewWrapper,
		newMigrator,
		wire.Bind(new(services.SnapshotStore), new(*storage.Wrapper)),
		wire.Bind(new(services.ModeSource), new(*storage.Wrapper)),
		remote.NewStore,

		services.NewScheduleService,
		services.NewStatusService,
		newShareLoader,
		controllers.NewApiController,
		controllers.NewRemoteController,
		controllers.NewShareController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitViewer(cfg *structures.CliFlags) (*internal.ViewerApp, error) {

	wire.Build(
		newViewerLogger,
		internal.NewViewerApp,
	)

	return nil, nil
}
