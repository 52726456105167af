package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig(discardLogger())

	assert.Equal(t, "30 20 * * *", cfg.CronSchedule)
	assert.Equal(t, "Asia/Shanghai", cfg.Timezone)
	assert.Equal(t, 5*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 9091, cfg.MetricsPort)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "0 8 * * 1")
	t.Setenv("WORKER_TIMEZONE", "UTC")
	t.Setenv("WORKER_JOB_TIMEOUT", "90s")
	t.Setenv("WORKER_METRICS_PORT", "9200")

	cfg := LoadConfig(discardLogger())

	assert.Equal(t, "0 8 * * 1", cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 90*time.Second, cfg.JobTimeout)
	assert.Equal(t, 9200, cfg.MetricsPort)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "not a cron")
	t.Setenv("WORKER_TIMEZONE", "Mars/Olympus")
	t.Setenv("WORKER_METRICS_PORT", "80")

	cfg := LoadConfig(discardLogger())

	assert.Equal(t, "30 20 * * *", cfg.CronSchedule)
	assert.Equal(t, "Asia/Shanghai", cfg.Timezone)
	assert.Equal(t, 9091, cfg.MetricsPort)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.CronSchedule = "99 99 * * *"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.JobTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MetricsPort = 80
	assert.Error(t, cfg.Validate())
}
