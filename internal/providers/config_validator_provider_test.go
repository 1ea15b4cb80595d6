package providers

import (
	"shiftplan/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Storage: structures.StorageConfig{
			PrimaryEnabled: true,
			PrimaryPath:    "/tmp/shiftplan.db",
			OpenTimeout:    5 * time.Second,
			LegacyPath:     "/tmp/legacy.dat",
		},
		Remote: structures.RemoteConfig{
			Backend: "file",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingLegacyPath(t *testing.T) {
	c := validConfig()
	c.Storage.LegacyPath = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownRemoteBackend(t *testing.T) {
	c := validConfig()
	c.Remote.Backend = "redis"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
