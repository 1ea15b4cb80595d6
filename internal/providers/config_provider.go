package providers

import (
	"fmt"
	"path/filepath"
	"shiftplan/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultOpenTimeout  = 5 * time.Second
	defaultPollInterval = 30 * time.Second
	defaultProbeKey     = "migration-test"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.primaryEnabled", true)
	v.SetDefault("storage.openTimeout", defaultOpenTimeout)
	v.SetDefault("migration.enabled", true)
	v.SetDefault("migration.probeKey", defaultProbeKey)
	v.SetDefault("share.pollInterval", defaultPollInterval)
	v.SetDefault("remote.backend", "file")

	v.BindEnv("logger.level", "SHIFTPLAN_LOG_LEVEL")
	v.BindEnv("storage.primaryEnabled", "SHIFTPLAN_PRIMARY_ENABLED")
	v.BindEnv("storage.primaryPath", "SHIFTPLAN_PRIMARY_PATH")
	v.BindEnv("storage.legacyPath", "SHIFTPLAN_LEGACY_PATH")
	v.BindEnv("cache.size", "SHIFTPLAN_CACHE_SIZE")
	v.BindEnv("remote.backend", "SHIFTPLAN_REMOTE_BACKEND")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Remote.Backend == "file" && conf.Remote.FilePath == "" {
		conf.Remote.FilePath = filepath.Join(filepath.Dir(conf.Storage.LegacyPath), "remote.dat")
	}

	conf.AppName = "ShiftPlan"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
