package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
env: "prod"
timezone: "Europe/Berlin"
database:
  host: "db"
  password: "secret"
http_server:
  address: ":9000"
day_relation:
  recurring_future: 12
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, ":9000", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 3, cfg.DayRelation.RecurringPast)
	assert.Equal(t, 12, cfg.DayRelation.RecurringFuture)
	assert.Equal(t, 1000, cfg.DayRelation.MaxDaysPerEvent)
	assert.Equal(t, 7, cfg.List.LatestLimit)
	assert.Equal(t, "0 3 * * *", cfg.Scheduler.RegenerateDays)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, cfg.Location())
}
