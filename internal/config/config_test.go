package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, 100, cfg.MaxRows)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	assert.Equal(t, "stdio", cfg.Transport)
}

func TestLoad_ProfilesFileAlone(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PROFILES_FILE", "/etc/relnav/profiles.yaml")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/etc/relnav/profiles.yaml", cfg.ProfilesFile)
}

func TestLoad_MissingDatabaseURLAndProfiles(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "PROFILES_FILE")
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DIALECT", "postgresql")
	t.Setenv("MAX_ROWS", "500")
	t.Setenv("QUERY_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SCHEMAS", "public, app")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "postgresql", cfg.Dialect)
	assert.Equal(t, 500, cfg.MaxRows)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"public", "app"}, cfg.Schemas)
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/env")
	t.Setenv("MAX_ROWS", "500")

	url := "postgres://localhost/flag"
	maxRows := 25
	cfg, err := Load(Overrides{
		DatabaseURL: &url,
		MaxRows:     &maxRows,
		AuditLog:    "/tmp/audit.ndjson",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/flag", cfg.DatabaseURL)
	assert.Equal(t, 25, cfg.MaxRows)
	assert.Equal(t, "/tmp/audit.ndjson", cfg.AuditLog)
}

func TestLoad_InvalidDialect(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DIALECT", "oracle")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DIALECT")
}

func TestLoad_InvalidMaxRows(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("MAX_ROWS", "-1")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ROWS")
}

func TestLoad_InvalidQueryTimeout(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("QUERY_TIMEOUT", "not-a-duration")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY_TIMEOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("LOG_LEVEL", "invalid")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidTransport(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("TRANSPORT", "grpc")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSPORT")
}

func TestLoad_HTTPRequiresBearerToken(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("TRANSPORT", "http")
	t.Setenv("HTTP_BEARER_TOKEN", "")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_BEARER_TOKEN")

	t.Setenv("HTTP_BEARER_TOKEN", "secret")
	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.HTTPBearerToken)
}

func TestLoad_PoolSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("POOL_MAX_CONNS", "10")
	t.Setenv("POOL_MIN_CONNS", "2")
	t.Setenv("POOL_MAX_CONN_LIFETIME", "1h")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, int32(10), cfg.PoolMaxConns)
	assert.Equal(t, int32(2), cfg.PoolMinConns)
	assert.Equal(t, time.Hour, cfg.PoolMaxConnLifetime)
}

func TestLoad_PoolMinExceedsMax(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("POOL_MAX_CONNS", "2")
	t.Setenv("POOL_MIN_CONNS", "5")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POOL_MIN_CONNS")
}
