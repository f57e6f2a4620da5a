package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOCSTORE_DRIVER", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Engine.CacheTTL)
	assert.Equal(t, "gpt-4o-mini", cfg.Assistant.Model)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: sqlite
  sqlite_path: /tmp/jn.db
engine:
  cache_ttl: 30s
log:
  level: debug
  format: json
`), 0o600))

	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ENGINE_CACHE_TTL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/jn.db", cfg.Store.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.Engine.CacheTTL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DOCSTORE_DRIVER", "cassandra")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestLoad_PostgresFromDBVariables(t *testing.T) {
	t.Setenv("DOCSTORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "vendas")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, cfg.Store.PostgresDSN, "host=db")
	assert.Contains(t, cfg.Store.PostgresDSN, "dbname=vendas")
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("ENGINE_CACHE_TTL", "soon")

	_, err := Load("")
	assert.Error(t, err)
}
