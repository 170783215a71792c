package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "docdesk.db", cfg.SQLite.Path)
	assert.Equal(t, config.SinkLocal, cfg.Export.Sink)
	assert.Equal(t, 15, cfg.Export.MaxDetailSheets)
	assert.Equal(t, time.Second, cfg.Autosave.Delay)
	assert.Equal(t, 30, cfg.Document.ValidityDays)
	assert.Equal(t, 30, cfg.Document.DueDays)
	assert.Equal(t, 5, cfg.Document.RecentLimit)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Store.KeyPrefix)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docdesk.yaml")
	body := `
store:
  backend: Redis
  key_prefix: "shop1:"
redis:
  addr: cache:6379
  db: 2
export:
  sink: s3
  max_detail_sheets: 5
autosave:
  delay: 250ms
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "shop1:", cfg.Store.KeyPrefix)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, config.SinkS3, cfg.Export.Sink)
	assert.Equal(t, 5, cfg.Export.MaxDetailSheets)
	assert.Equal(t, 250*time.Millisecond, cfg.Autosave.Delay)
	// Untouched sections keep their defaults.
	assert.Equal(t, "docdesk.db", cfg.SQLite.Path)
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: mongo\n"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}
