package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/api/middleware"
	"github.com/feral-file/ff-event-scanner/internal/api/server"
	"github.com/feral-file/ff-event-scanner/internal/api/shared/executor"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/logger"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Event Scanner API")

	// Connect to database, reads go to the replica when one is configured
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
	logger.InfoCtx(ctx, "Connected to database",
		zap.Bool("read_replica", readDSN != ""),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Publisher for task dispatch
	publisher, err := jetstream.NewPublisher(ctx, jetstream.FromConfig(cfg.NATS), adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// The API only pushes tasks, it never consumes them
	taskQueue := queue.New(queue.Config{TaskLease: cfg.Queue.TaskLease}, dataStore, publisher, nil, nil, clock, jsonAdapter)

	// Networks serve the current block of the sync progress endpoints
	networkConfigs, err := cfg.Networks.Parse()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid network configuration", zap.Error(err))
	}
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
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

	exec := executor.NewExecutor(dataStore, taskQueue, networks, adapter.NewJCS())

	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, exec)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// The original ctx is canceled, shut down on a fresh one
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("API server stopped")
}
