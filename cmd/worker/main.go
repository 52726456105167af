// The worker binary runs the scheduled daily channel send: a cron job that
// selects and sends the post planned for the current day, plus health and
// metrics endpoints.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"notigram/internal/config"
	"notigram/internal/infra/backup"
	"notigram/internal/infra/imagehost"
	"notigram/internal/infra/notion"
	"notigram/internal/infra/telegram"
	"notigram/internal/infra/worker"
	"notigram/internal/observability/logging"
	"notigram/internal/usecase"
	"notigram/internal/usecase/channel"
)

func main() {
	logger := logging.NewLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	workerCfg := worker.LoadConfig(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.Duration("job_timeout", workerCfg.JobTimeout),
		slog.Int("metrics_port", workerCfg.MetricsPort))

	svc, err := buildChannelService(cfg, logger)
	if err != nil {
		logger.Error("failed to wire channel service", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := worker.NewMetrics()
	metrics.MustRegister()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := worker.NewObsServer(workerCfg.MetricsPort, logger)
	go func() {
		if err := obs.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("observability server failed", slog.Any("error", err))
		}
	}()

	scheduler, err := startScheduler(workerCfg, logger, svc, metrics)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	obs.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker")
	obs.SetReady(false)
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	cancel()
	logger.Info("worker stopped")
}

func buildChannelService(cfg *config.Config, logger *slog.Logger) (*channel.Service, error) {
	transport, err := telegram.NewClient(cfg.Telegram, logger)
	if err != nil {
		return nil, err
	}

	svc := &channel.Service{
		Posts:     notion.NewClient(cfg.Notion, logger),
		Transport: transport,
		Footer:    cfg.Channel.Footer,
		Logger:    logger,
	}
	if cfg.Backup.Enabled {
		images := imagehost.NewClient(cfg.ImageHost, logger)
		svc.Archive = backup.NewWriter(cfg.Backup.Dir, images, logger)
	}
	return svc, nil
}

func startScheduler(cfg worker.Config, logger *slog.Logger, svc *channel.Service, metrics *worker.Metrics) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runSendJob(cfg, logger, svc, metrics, loc)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func runSendJob(cfg worker.Config, logger *slog.Logger, svc *channel.Service, metrics *worker.Metrics, loc *time.Location) {
	start := time.Now()
	logger.Info("scheduled send started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	result, err := svc.SendByDay(ctx, time.Now().In(loc), false)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		logger.Error("scheduled send failed", slog.Any("error", err))
		metrics.RecordRun("failure", elapsed)
		return
	}

	outcome := "sent"
	if result.Code == usecase.CodeEmpty {
		outcome = "empty"
	}
	metrics.RecordRun(outcome, elapsed)
	logger.Info("scheduled send completed",
		slog.String("outcome", outcome),
		slog.String("message", result.Message),
		slog.Duration("duration", time.Since(start)))
}
