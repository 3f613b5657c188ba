package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/scheduler"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadSchedulerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scheduler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Scheduler")

	metricsServer := metrics.NewServer(cfg.MetricsAddr)
	if err := metricsServer.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start metrics server", zap.Error(err))
	}

	// The sweepers claim rows, so they always talk to the primary
	db, err := store.Open(cfg.Database.DSN(), "", cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()
	publisher, err := jetstream.NewPublisher(ctx, jetstream.FromConfig(cfg.NATS), adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	taskQueue := queue.New(queue.Config{TaskLease: cfg.Queue.TaskLease}, dataStore, publisher, nil, nil, clock, adapter.NewJSON())
	sweepers := scheduler.NewQueueSweepers(scheduler.Config{
		ScheduleInterval:  cfg.Scheduler.ScheduleInterval,
		DeferredInterval:  cfg.Scheduler.DeferredInterval,
		DeferredBatchSize: cfg.Scheduler.DeferredBatchSize,
		StaleInterval:     cfg.Scheduler.StaleInterval,
	}, taskQueue, clock)

	errCh := make(chan error, 1)
	go func() {
		if err := scheduler.Run(ctx, sweepers...); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "scheduler"))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("Scheduler stopped")
}
