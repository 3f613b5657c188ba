package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/cache"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/poller"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/ratelimit"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

var (
	configFile string
	envPath    string
	networkArg string
	listenerID string
	interval   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "replay",
	Short: "Republish the events of a promptly listener over a block range",
	Long: `replay reads the logs a promptly synced event listener matches in a closed
block interval and publishes them on events.<network>, exactly as the live
poller would. The listener's live cursor is not moved.`,
	Example:      "  replay --network 1 --listener 3f0c... --interval 19000000-19000100",
	SilenceUsage: true,
	RunE:         runReplay,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVar(&envPath, "env", "config/", "path to environment files")
	rootCmd.Flags().StringVarP(&networkArg, "network", "n", "", "chain id of the listener's network")
	rootCmd.Flags().StringVarP(&listenerID, "listener", "l", "", "event listener id")
	rootCmd.Flags().StringVarP(&interval, "interval", "i", "", "closed block range as from-to")
	_ = rootCmd.MarkFlagRequired("network")
	_ = rootCmd.MarkFlagRequired("listener")
	_ = rootCmd.MarkFlagRequired("interval")
}

func runReplay(cmd *cobra.Command, args []string) error {
	networkID, err := domain.ParseNetworkID(networkArg)
	if err != nil {
		return err
	}
	from, to, err := poller.ParseInterval(interval)
	if err != nil {
		return err
	}

	config.ChdirRepoRoot()
	cfg, err := config.LoadReplayConfig(configFile, envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "replay",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Database.DSN(), "", cfg.Debug)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	networkConfigs, err := cfg.Networks.Parse()
	if err != nil {
		return err
	}
	if _, ok := networkConfigs[networkID]; !ok {
		return fmt.Errorf("%w: network %s is not configured", domain.ErrInvalidInput, networkID)
	}

	clock := adapter.NewClock()
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	limiter, err := ratelimit.New(ratelimit.Config{
		LocalFallback: cfg.RateLimit.LocalFallback,
		Rates:         network.Rates(networkConfigs),
	}, redisClient, clock)
	if err != nil {
		return err
	}
	defer func() { _ = limiter.Close() }()

	networks := network.NewRegistry(networkConfigs, adapter.NewEthClientDialer(), limiter, clock)
	defer networks.Close()

	publisher, err := jetstream.NewPublisher(ctx, jetstream.FromConfig(cfg.NATS), adapter.NewNatsJetStream())
	if err != nil {
		return err
	}
	defer publisher.Close()

	p := poller.New(poller.Config{}, store.NewPGStore(db), networks,
		cache.NewSyncHeightCache(redisClient, time.Hour), publisher, clock, adapter.NewJSON())

	logger.InfoCtx(ctx, "Replaying interval",
		zap.Stringer("network", networkID),
		zap.String("listenerID", listenerID),
		zap.Uint64("from", from),
		zap.Uint64("to", to))

	published, err := p.Replay(ctx, networkID, listenerID, from, to)
	if err != nil {
		return err
	}

	cmd.Printf("%d:{%d-%d} %d\n", networkID, from, to, published)
	return nil
}
