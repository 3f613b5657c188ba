package network

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/ratelimit"
)

const (
	dialInitialInterval = 500 * time.Millisecond
	dialMaxInterval     = 5 * time.Second
	dialMaxElapsedTime  = 30 * time.Second
)

type registry struct {
	configs map[domain.NetworkID]config.NetworkConfig
	dialer  adapter.EthClientDialer
	limiter ratelimit.Limiter
	clock   adapter.Clock

	// one slot per configured network, the map is never written after construction
	slots map[domain.NetworkID]*networkSlot
}

// networkSlot serialises dialing of a single network
type networkSlot struct {
	mu      sync.Mutex
	network *evmNetwork
}

// NewRegistry creates a registry over already validated network settings
func NewRegistry(
	configs map[domain.NetworkID]config.NetworkConfig,
	dialer adapter.EthClientDialer,
	limiter ratelimit.Limiter,
	clock adapter.Clock,
) Registry {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}

	slots := make(map[domain.NetworkID]*networkSlot, len(configs))
	for id := range configs {
		slots[id] = &networkSlot{}
	}

	return &registry{
		configs: configs,
		dialer:  dialer,
		limiter: limiter,
		clock:   clock,
		slots:   slots,
	}
}

func (r *registry) IDs() []domain.NetworkID {
	ids := make([]domain.NetworkID, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *registry) Network(ctx context.Context, id domain.NetworkID) (Network, error) {
	cfg, ok := r.configs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownNetwork, id)
	}

	// A slow endpoint only holds up callers of its own network
	slot := r.slots[id]
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.network != nil {
		return slot.network, nil
	}

	client, err := r.dial(ctx, id, cfg)
	if err != nil {
		return nil, err
	}

	n := newNetwork(id, cfg, client, r.limiter, r.clock)
	slot.network = n
	logger.InfoCtx(ctx, "Connected to network", zap.String("network", id.Name()), zap.Int64("chainId", int64(id)))

	return n, nil
}

// dial connects to the RPC endpoint and checks that it serves the expected chain
func (r *registry) dial(ctx context.Context, id domain.NetworkID, cfg config.NetworkConfig) (adapter.EthClient, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = dialInitialInterval
	b.MaxInterval = dialMaxInterval
	b.MaxElapsedTime = dialMaxElapsedTime

	var client adapter.EthClient
	operation := func() error {
		c, err := r.dialer.Dial(ctx, cfg.RPCURL)
		if err != nil {
			return err
		}

		chainID, err := c.ChainID(ctx)
		if err != nil {
			c.Close()
			return err
		}
		if chainID.Int64() != int64(id) {
			c.Close()
			return backoff.Permanent(fmt.Errorf("%w: rpc of network %d serves chain %s", domain.ErrInvalidInput, id, chainID))
		}

		client = c
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "Failed to dial network, retrying",
			zap.String("network", id.Name()),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to dial network %d: %w", id, err)
	}

	return client, nil
}

func (r *registry) Close() {
	for _, slot := range r.slots {
		slot.mu.Lock()
		if slot.network != nil {
			slot.network.client.Close()
			slot.network = nil
		}
		slot.mu.Unlock()
	}
}

// Rates returns the limiter budget of every network with requests_per_second set,
// keyed by network name
func Rates(configs map[domain.NetworkID]config.NetworkConfig) map[string]ratelimit.Rate {
	rates := make(map[string]ratelimit.Rate, len(configs))
	for id, cfg := range configs {
		if cfg.RequestsPerSecond <= 0 {
			continue
		}
		rates[id.Name()] = ratelimit.Rate{
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.RequestsPerSecond,
		}
	}
	return rates
}
