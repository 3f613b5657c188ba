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
	"github.com/feral-file/ff-event-scanner/internal/cache"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/poller"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/ratelimit"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadPollerConfig(*configFile, *envPath)
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
			"service": "poller",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Live Poller")

	metricsServer := metrics.NewServer(cfg.MetricsAddr)
	if err := metricsServer.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start metrics server", zap.Error(err))
	}

	// The listener cursor is written every tick, keep it on the primary
	db, err := store.Open(cfg.Database.DSN(), "", cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	publisher, err := jetstream.NewPublisher(ctx, jetstream.FromConfig(cfg.NATS), adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	networkConfigs, err := cfg.Networks.Parse()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid network configuration", zap.Error(err))
	}
	limiter, err := ratelimit.New(ratelimit.Config{
		LocalFallback: cfg.RateLimit.LocalFallback,
		Rates:         network.Rates(networkConfigs),
	}, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() { _ = limiter.Close() }()

	networks := network.NewRegistry(networkConfigs, adapter.NewEthClientDialer(), limiter, clock)
	defer networks.Close()

	p := poller.New(poller.Config{
		Interval:     cfg.Poller.Interval,
		ChunkSize:    cfg.Poller.ChunkSize,
		GapThreshold: cfg.Poller.GapThreshold,
	}, dataStore, networks, cache.NewSyncHeightCache(redisClient, cfg.Poller.CacheTTL), publisher, clock, adapter.NewJSON())

	errCh := make(chan error, 1)
	go func() {
		logger.InfoCtx(ctx, "Polling networks",
			zap.Int("networks", len(networkConfigs)),
			zap.Duration("interval", cfg.Poller.Interval))
		if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "poller"))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("Poller stopped")
}
