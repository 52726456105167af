// Package worker hosts the scheduled-send runtime: its configuration, the
// health endpoints, and the Prometheus metrics the worker binary exposes.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"notigram/internal/config"
)

// Config controls the worker binary: when the daily channel send fires,
// in which timezone, how long one run may take, and where the health and
// metrics endpoints listen.
//
// Loading is fail-open: an invalid value produces a warning and the
// default, never a startup failure.
type Config struct {
	// CronSchedule is a standard 5-field cron expression for the daily
	// send job. Default: "30 20 * * *" (every day at 20:30).
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	// Default: "Asia/Shanghai".
	Timezone string

	// JobTimeout caps a single send run. Default: 5 minutes.
	JobTimeout time.Duration

	// MetricsPort serves /metrics and /healthz. Default: 9091.
	MetricsPort int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "30 20 * * *",
		Timezone:     "Asia/Shanghai",
		JobTimeout:   5 * time.Minute,
		MetricsPort:  9091,
	}
}

// Validate checks the configuration. The cron expression must parse in the
// standard 5-field format and the timezone must be a known IANA name.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive, got %s", c.JobTimeout)
	}
	if c.MetricsPort < 1024 || c.MetricsPort > 65535 {
		return fmt.Errorf("metrics port %d out of range [1024, 65535]", c.MetricsPort)
	}
	return nil
}

// LoadConfig reads the worker configuration from the environment with
// fallback to defaults. A field that fails validation reverts to its
// default with a warning; the returned configuration is always valid.
func LoadConfig(logger *slog.Logger) Config {
	cfg := DefaultConfig()
	defaults := DefaultConfig()

	cfg.CronSchedule = config.LoadEnvString("WORKER_CRON_SCHEDULE", cfg.CronSchedule)
	if _, err := cron.ParseStandard(cfg.CronSchedule); err != nil {
		logger.Warn("invalid cron schedule, using default",
			slog.String("value", cfg.CronSchedule),
			slog.Any("error", err))
		cfg.CronSchedule = defaults.CronSchedule
	}

	cfg.Timezone = config.LoadEnvString("WORKER_TIMEZONE", cfg.Timezone)
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		logger.Warn("invalid timezone, using default",
			slog.String("value", cfg.Timezone),
			slog.Any("error", err))
		cfg.Timezone = defaults.Timezone
	}

	timeout, warnings := config.LoadEnvDuration("WORKER_JOB_TIMEOUT", cfg.JobTimeout)
	cfg.JobTimeout = timeout
	logWarnings(logger, warnings)

	port, warnings := config.LoadEnvInt64("WORKER_METRICS_PORT", int64(cfg.MetricsPort))
	logWarnings(logger, warnings)
	if port < 1024 || port > 65535 {
		logger.Warn("metrics port out of range, using default",
			slog.Int64("value", port))
		port = int64(defaults.MetricsPort)
	}
	cfg.MetricsPort = int(port)

	return cfg
}

func logWarnings(logger *slog.Logger, warnings []string) {
	for _, w := range warnings {
		logger.Warn("configuration fallback applied", slog.String("warning", w))
	}
}
