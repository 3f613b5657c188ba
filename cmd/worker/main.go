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
	"github.com/feral-file/ff-event-scanner/internal/historysync"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/ratelimit"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
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
			"service": "worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Task Worker")

	metricsServer := metrics.NewServer(cfg.MetricsAddr)
	if err := metricsServer.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start metrics server", zap.Error(err))
	}

	// Connect to database
	var readDSN string
	if cfg.Database.ReadHost != "" {
		readDSN = cfg.Database.ReadDSN()
	}
	db, err := store.Open(cfg.Database.DSN(), readDSN, cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()
	natsConfig := jetstream.FromConfig(cfg.NATS)

	publisher, err := jetstream.NewPublisher(ctx, natsConfig, natsJS)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	consumer, err := jetstream.NewConsumer(ctx, natsConfig, natsJS, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS consumer", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer consumer.Close()

	// Networks, throttled by a limiter shared with every other process
	networkConfigs, err := cfg.Networks.Parse()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid network configuration", zap.Error(err))
	}
	limiter, err := ratelimit.New(ratelimit.Config{
		LocalFallback: cfg.RateLimit.LocalFallback,
		Rates:         network.Rates(networkConfigs),
	}, adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() { _ = limiter.Close() }()

	networks := network.NewRegistry(networkConfigs, adapter.NewEthClientDialer(), limiter, clock)
	defer networks.Close()

	// Task queue and its handlers
	registry := queue.NewRegistry()
	taskQueue := queue.New(queue.Config{
		ConsumerName: cfg.NATS.ConsumerName,
		Concurrency:  cfg.Worker.PoolSize,
		TaskLease:    cfg.Queue.TaskLease,
	}, dataStore, publisher, consumer, registry, clock, jsonAdapter)

	handlers := historysync.Handlers{
		Schedule:    historysync.NewSchedule(taskQueue),
		Provisioner: historysync.NewProvisioner(dataStore, jsonAdapter),
		Broker:      historysync.NewBroker(dataStore, taskQueue, clock, cfg.Worker.BrokerConcurrency),
		Resolver: historysync.NewResolver(historysync.ResolverConfig{
			DeferDelay: cfg.Queue.DeferDelay,
		}, dataStore, networks, clock, jsonAdapter),
	}
	if err := handlers.Register(registry); err != nil {
		logger.FatalCtx(ctx, "Failed to register task handlers", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Registered task handlers", zap.Int("count", len(registry.Names())))

	errCh := make(chan error, 1)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		logger.InfoCtx(ctx, "Consuming tasks",
			zap.String("topic", cfg.Queue.Topic),
			zap.Int("concurrency", cfg.Worker.PoolSize))
		if err := taskQueue.Consume(ctx, cfg.Queue.Topic); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "consumer"))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Consume returns once in-flight tasks have persisted their outcomes
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		logger.WarnCtx(shutdownCtx, "Timed out waiting for in-flight tasks")
	}

	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("Worker stopped")
}
