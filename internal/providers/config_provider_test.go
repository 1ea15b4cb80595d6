package providers

import (
	"os"
	"path/filepath"
	"shiftplan/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
webServer:
  host: 127.0.0.1
  port: 8090
logger:
  level: debug
  mode: 420
  dir: /tmp
storage:
  primaryPath: /tmp/shiftplan.db
  legacyPath: /tmp/data/legacy.dat
cache:
  enabled: true
  size: 8
`

func TestNewConfigProvider_LoadsYAMLWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiftplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "ShiftPlan", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.True(t, conf.Storage.PrimaryEnabled)
	assert.Equal(t, 5*time.Second, conf.Storage.OpenTimeout)
	assert.Equal(t, 30*time.Second, conf.Share.PollInterval)
	assert.Equal(t, "migration-test", conf.Migration.ProbeKey)
	assert.Equal(t, "file", conf.Remote.Backend)
	assert.Equal(t, "/tmp/data/remote.dat", conf.Remote.FilePath)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiftplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
	t.Setenv("SHIFTPLAN_PRIMARY_ENABLED", "false")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.False(t, conf.Storage.PrimaryEnabled)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
