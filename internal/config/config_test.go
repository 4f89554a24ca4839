package config

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, filepath.Join("data", "estudos.json"), cfg.DataFilePath())
	assert.Equal(t, filepath.Join("data", "estudos.db"), cfg.SQLitePath)
	assert.False(t, cfg.ResetOnStart)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("STUDY_SERVICE_STORE_DRIVER", "sqlite")
	t.Setenv("STUDY_SERVICE_DATA_DIR", "/tmp/planner")
	t.Setenv("STUDY_SERVICE_HTTP_PORT", "9999")
	t.Setenv("STUDY_SERVICE_RESET_ON_START", "true")
	t.Setenv("STUDY_SERVICE_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, filepath.Join("/tmp/planner", "estudos.db"), cfg.SQLitePath)
	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.True(t, cfg.ResetOnStart)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestConfigLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STUDY_SERVICE_STORE_DRIVER", "mongo")
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported STORE_DRIVER")
}

func TestResolveDefaults_PostgresNeedsDSN(t *testing.T) {
	cfg := NewForTesting()
	cfg.StoreDriver = DriverPostgres
	require.Error(t, cfg.ResolveDefaults())

	cfg.PostgresDSN = "postgres://localhost/planner"
	require.NoError(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_AutoMeansFile(t *testing.T) {
	cfg := NewForTesting()
	cfg.StoreDriver = "auto"
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, DriverFile, cfg.StoreDriver)
}

func TestResolveDefaults_BadLogLevel(t *testing.T) {
	cfg := NewForTesting()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.ResolveDefaults())
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}
