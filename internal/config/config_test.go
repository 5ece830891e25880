package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kanban/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, config.RepositorySQLite, cfg.Repository.Type)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.False(t, cfg.CORS.Enabled)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	for name, content := range map[string]string{
		"empty":         "",
		"comments only": "# nothing configured yet\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(writeConfig(t, content))
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9090"
  shutdown_timeout: 5s
repository:
  type: postgres
database:
  url: postgres://u:p@localhost:5432/db
  idle_timeout: 1m
logging:
  development: true
  level: warn
tracing:
  enabled: true
  exporter: none
cors:
  enabled: true
  allowed_origins: ["http://localhost:3000"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, config.RepositoryPostgres, cfg.Repository.Type)
	assert.Equal(t, time.Minute, cfg.Database.IdleTimeout)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, config.TraceExporterNone, cfg.Tracing.Exporter)
	assert.Equal(t, "kanban", cfg.Tracing.ServiceName)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
repository:
  type: sqlite
`)
	t.Setenv("KANBAN_SERVER_PORT", "7070")
	t.Setenv("KANBAN_REPOSITORY_TYPE", "inmemory")
	t.Setenv("KANBAN_SQLITE_PATH", "/tmp/other.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
	assert.Equal(t, "/tmp/other.db", cfg.SQLite.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "server: [unclosed"},
		{name: "unknown repository", content: "repository:\n  type: mongo\n"},
		{name: "postgres without url", content: "repository:\n  type: postgres\n"},
		{name: "max connections above int32", content: "database:\n  max_connections: 4294967296\n"},
		{name: "negative min connections", content: "database:\n  min_connections: -1\n"},
		{name: "min above max connections", content: "database:\n  max_connections: 2\n  min_connections: 5\n"},
		{name: "unknown trace exporter", content: "tracing:\n  enabled: true\n  exporter: zipkin\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
