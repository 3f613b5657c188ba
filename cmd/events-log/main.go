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
	"github.com/feral-file/ff-event-scanner/internal/eventslog"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadEventsLogConfig(*configFile, *envPath)
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
			"service": "events-log",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	consumer, err := jetstream.NewConsumer(ctx, jetstream.FromConfig(cfg.NATS), adapter.NewNatsJetStream(), adapter.NewClock())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS consumer", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer consumer.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := eventslog.New(consumer, adapter.NewJSON()).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "events-log"))
	}
	cancel()
}
