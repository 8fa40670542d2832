package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/app"
	"github.com/riskibarqy/awaygame-sync/internal/config"
	"github.com/riskibarqy/awaygame-sync/internal/observability"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/riskibarqy/awaygame-sync/internal/scheduler"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2

	shutdownTimeout = 30 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return exitConfig
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return exitFailed
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return exitFailed
	}
	defer func() { _ = stopProfiling() }()

	metrics := observability.NewSyncMetrics()
	metricsSrv := observability.StartMetricsServer(cfg, metrics.Handler(), logger)
	defer func() {
		if err := observability.StopMetricsServer(metricsSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop metrics server", "error", err)
		}
	}()

	job, err := app.NewSyncJob(cfg, metrics, logger)
	if err != nil {
		logger.Error("build sync job", "error", err)
		return exitFailed
	}
	defer func() {
		if err := job.Close(); err != nil {
			logger.Error("close sync job", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("awaygame sync starting",
		"mode", cfg.SyncMode,
		"store", cfg.StoreDriver,
		"leagues", len(cfg.Leagues),
		"horizon_days", cfg.ScheduleHorizonDays,
	)

	if cfg.SyncMode == config.ModeOnce {
		return runOnce(ctx, job, logger)
	}
	return runCron(ctx, cfg, job, logger)
}

func runOnce(ctx context.Context, job *app.SyncJob, logger *logging.Logger) int {
	report, err := job.Run(ctx)
	if err != nil {
		logger.Error("sync run failed", "error", err)
		return exitFailed
	}

	logger.Info("sync run finished",
		"leagues", len(report.Leagues),
		"failed_leagues", len(report.Failed()),
		"duration", report.Duration.String(),
	)
	return exitOK
}

func runCron(ctx context.Context, cfg config.Config, job *app.SyncJob, logger *logging.Logger) int {
	sched, err := scheduler.New(scheduler.Config{
		Spec:     cfg.SyncCron,
		Location: cfg.SyncTimezone,
	}, func(ctx context.Context) error {
		_, err := job.Run(ctx)
		return err
	}, logger.Named("scheduler"))
	if err != nil {
		logger.Error("build scheduler", "error", err)
		return exitConfig
	}

	sched.Start()
	if cfg.SyncRunOnStart {
		sched.TriggerAsync()
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return exitFailed
	}
	return exitOK
}
