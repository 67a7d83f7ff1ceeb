package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATENOVA_DATA_DIR", dir)
	t.Setenv("DATENOVA_CONFIG", "")
	t.Setenv("DATENOVA_METRICS_FILE", "")
	t.Setenv("DATENOVA_METRICS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, db.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, filepath.Join(dir, "datenova.db"), cfg.DBDSN)
	assert.Equal(t, WriteTransactional, cfg.WriteMode)
	assert.Equal(t, 7*24*time.Hour, cfg.InviteTTL)
	assert.False(t, cfg.LogCalls)
	assert.Equal(t, filepath.Join(dir, "session"), cfg.SessionPath())
	assert.Equal(t, filepath.Join(dir, "storage"), cfg.StorageDir())
	assert.Empty(t, cfg.MetricsFile)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATENOVA_DATA_DIR", dir)
	t.Setenv("DATENOVA_CONFIG", "")
	yamlBody := `
db:
  driver: postgres
  dsn: postgres://localhost/datenova
write_mode: sequential
log_calls: true
invite_ttl_days: 3
feed_poll_ms: 250
session_ttl: 2h
metrics_addr: 127.0.0.1:9464
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o644))
	t.Setenv("DATENOVA_WRITE_MODE", "transactional")
	t.Setenv("DATENOVA_APP_URL", "https://app.example.com")
	t.Setenv("DATENOVA_METRICS_FILE", "/var/lib/node_exporter/datenova.prom")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, db.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/datenova", cfg.DBDSN)
	assert.Equal(t, WriteTransactional, cfg.WriteMode, "env wins over file")
	assert.True(t, cfg.LogCalls)
	assert.Equal(t, 3*24*time.Hour, cfg.InviteTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.FeedPoll)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://app.example.com", cfg.AppURL)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.Equal(t, "/var/lib/node_exporter/datenova.prom", cfg.MetricsFile)
}

func TestLoad_InvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("DATENOVA_DATA_DIR", t.TempDir())
	t.Setenv("DATENOVA_CONFIG", "")
	t.Setenv("DATENOVA_WRITE_MODE", "eventually")
	t.Setenv("DATENOVA_LOG_CALLS", "maybe")
	t.Setenv("DATENOVA_INVITE_TTL_DAYS", "-2")
	t.Setenv("DATENOVA_FEED_POLL_MS", "abc")
	t.Setenv("DATENOVA_SESSION_TTL", "forever")

	cfg, err := Load()
	require.NoError(t, err)
	def := DefaultConfig(cfg.DataDir)
	assert.Equal(t, def.WriteMode, cfg.WriteMode)
	assert.Equal(t, def.LogCalls, cfg.LogCalls)
	assert.Equal(t, def.InviteTTL, cfg.InviteTTL)
	assert.Equal(t, def.FeedPoll, cfg.FeedPoll)
	assert.Equal(t, def.SessionTTL, cfg.SessionTTL)
}

func TestLoad_UnknownFileKeyIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("write_mod: sequential\n"), 0o644))
	t.Setenv("DATENOVA_DATA_DIR", dir)
	t.Setenv("DATENOVA_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestParseWriteMode(t *testing.T) {
	m, ok := ParseWriteMode(" Sequential ")
	assert.True(t, ok)
	assert.Equal(t, WriteSequential, m)
	_, ok = ParseWriteMode("")
	assert.False(t, ok)
}
