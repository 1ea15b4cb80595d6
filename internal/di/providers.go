package di

import (
	"os"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/services"
	"shiftplan/internal/share"
	"shiftplan/internal/storage"
	"shiftplan/internal/structures"
)

func newLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func newViewerLogger(flags *structures.CliFlags) providers.Logger {
	level := "info"
	if flags.DebugMode {
		level = "debug"
	}
	return providers.NewConsoleLogger(os.Stderr, level)
}

func newPrimaryStore(conf *structures.Config) *storage.SQLiteStore {
	return storage.NewSQLiteStore(conf.Storage.PrimaryPath)
}

func newLegacyStore(conf *structures.Config) (*storage.FileStore, func(), error) {
	compressor, err := storage.NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	fs := storage.NewFileStore(conf.Storage.LegacyPath, compressor)
	return fs, fs.Close, nil
}

func newMigrator(
	conf *structures.Config,
	wrapper *storage.Wrapper,
	legacy *storage.FileStore,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *storage.Migrator {
	return storage.NewMigrator(conf, wrapper, legacy, models.IsScheduleDomainKey, metrics, logger)
}

func newShareLoader(service services.ScheduleServiceInterface) share.Loader {
	return service
}
