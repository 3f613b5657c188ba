package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/cache"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

const (
	defaultInterval     = 2 * time.Second
	defaultChunkSize    = 100
	defaultGapThreshold = 5

	// maxChunks is how many contract pages a tick may walk before it is worth a warning
	maxChunks = 10
)

// Config holds the live poll loop settings
type Config struct {
	Interval     time.Duration
	ChunkSize    int
	GapThreshold uint64
}

// Poller tails the promptly listeners of every configured network and
// publishes what they match on events.<network>
type Poller struct {
	config    Config
	store     store.Store
	networks  network.Registry
	cache     cache.SyncHeightCache
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
}

// New creates a poller
func New(
	cfg Config,
	st store.Store,
	networks network.Registry,
	syncHeights cache.SyncHeightCache,
	publisher messaging.Publisher,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.GapThreshold == 0 {
		cfg.GapThreshold = defaultGapThreshold
	}

	return &Poller{
		config:    cfg,
		store:     st,
		networks:  networks,
		cache:     syncHeights,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
	}
}

// Run starts one loop per configured network and blocks until ctx is done
// or a network cannot be resolved
func (p *Poller) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range p.networks.IDs() {
		g.Go(func() error {
			net, err := p.networks.Network(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to resolve network %s: %w", id.Name(), err)
			}
			p.loop(gctx, net)
			return nil
		})
	}
	return g.Wait()
}

// loop ticks at a fixed rate: a tick that overruns the interval is followed
// right away by the next one, otherwise the loop sleeps the remainder
func (p *Poller) loop(ctx context.Context, net network.Network) {
	name := net.ID().Name()
	logger.InfoCtx(ctx, "Starting live poll loop",
		zap.String("network", name),
		zap.Duration("interval", p.config.Interval))

	for {
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Live poll loop stopped", zap.String("network", name))
			return
		}

		started := p.clock.Now()
		if err := p.Tick(ctx, net); err != nil && ctx.Err() == nil {
			logger.ErrorCtx(ctx, fmt.Errorf("poll tick on %s: %w", name, err))
		}
		elapsed := p.clock.Since(started)
		metrics.PollerTickDuration(name, elapsed)

		if elapsed >= p.config.Interval {
			logger.WarnCtx(ctx, "Live poll tick overran its interval",
				zap.String("network", name),
				zap.Duration("duration", elapsed),
				zap.Duration("interval", p.config.Interval))
			continue
		}

		select {
		case <-ctx.Done():
		case <-p.clock.After(p.config.Interval - elapsed):
		}
	}
}

// Tick polls every promptly listener of net once
func (p *Poller) Tick(ctx context.Context, net network.Network) error {
	head, err := net.BlockNumber(ctx)
	if err != nil {
		return err
	}

	count, err := p.store.CountScannableContracts(ctx, net.ID())
	if err != nil {
		return fmt.Errorf("failed to count contracts: %w", err)
	}
	chunks := int((count + int64(p.config.ChunkSize) - 1) / int64(p.config.ChunkSize))
	if chunks > maxChunks {
		logger.WarnCtx(ctx, "Too many contract chunks for one live poll tick",
			zap.String("network", net.ID().Name()),
			zap.Int("chunks", chunks),
			zap.Int("chunkSize", p.config.ChunkSize))
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	for chunk := 0; chunk < chunks; chunk++ {
		g.Go(func() error {
			if err := p.pollChunk(ctx, net, head, chunk*p.config.ChunkSize); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (p *Poller) pollChunk(ctx context.Context, net network.Network, head uint64, offset int) error {
	contracts, err := p.store.ListScannableContracts(ctx, net.ID(), p.config.ChunkSize, offset)
	if err != nil {
		return fmt.Errorf("failed to list contracts: %w", err)
	}
	if len(contracts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}
	listeners, err := p.store.ListPromptlyListeners(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list promptly listeners: %w", err)
	}
	byContract := make(map[string][]schema.EventListener, len(contracts))
	for _, l := range listeners {
		byContract[l.ContractID] = append(byContract[l.ContractID], l)
	}

	var errs []error
	for i := range contracts {
		contract := &contracts[i]
		if len(byContract[contract.ID]) == 0 {
			continue
		}

		bound, err := net.Bind(contract.Address, contract.ABI)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping contract with unusable ABI",
				zap.String("contractID", contract.ID),
				zap.Error(err))
			continue
		}

		for _, listener := range byContract[contract.ID] {
			if err := p.pollListener(ctx, bound, contract, listener, head); err != nil {
				errs = append(errs, fmt.Errorf("listener %s: %w", listener.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// pollListener scans [cursor, head] for one listener. A missing cursor or one
// that fell more than the gap threshold behind is moved to head without scanning.
func (p *Poller) pollListener(
	ctx context.Context,
	bound network.BoundContract,
	contract *schema.Contract,
	listener schema.EventListener,
	head uint64,
) error {
	filter, err := bound.Filter(listener.Name)
	if err != nil {
		logger.WarnCtx(ctx, "Skipping listener", zap.String("listenerID", listener.ID), zap.Error(err))
		return nil
	}

	cursor, ok, err := p.cache.Get(ctx, listener.ID)
	if err != nil {
		return err
	}
	if !ok || (head > cursor && head-cursor > p.config.GapThreshold) {
		return p.cache.Set(ctx, listener.ID, head)
	}
	if head <= cursor {
		return nil
	}

	logs, err := filter.Query(ctx, cursor, head)
	if err != nil {
		return err
	}

	if len(logs) > 0 {
		message := p.buildMessage(ctx, bound, contract, listener, cursor, head, logs)
		if err := p.publish(ctx, message, batchID(message)); err != nil {
			return err
		}
	}

	return p.cache.Set(ctx, listener.ID, head+1)
}

func (p *Poller) buildMessage(
	ctx context.Context,
	bound network.BoundContract,
	contract *schema.Contract,
	listener schema.EventListener,
	from, to uint64,
	logs []types.Log,
) domain.EventsMessage {
	message := domain.EventsMessage{
		Contract: domain.EventsContract{ID: contract.ID, Network: contract.Network, Address: contract.Address},
		Listener: domain.EventsListener{ID: listener.ID, Name: listener.Name},
		From:     from,
		To:       to,
		Events:   make([]domain.NormalizedEvent, 0, len(logs)),
	}
	for _, log := range logs {
		event, err := bound.Normalize(log)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable log",
				zap.String("txHash", log.TxHash.Hex()),
				zap.Error(err))
			continue
		}
		message.Events = append(message.Events, event)
	}
	return message
}

// batchID lets the broker drop a batch republished after a crash between publish and cursor update
func batchID(message domain.EventsMessage) string {
	return fmt.Sprintf("%s:%d-%d", message.Listener.ID, message.From, message.To)
}

func (p *Poller) publish(ctx context.Context, message domain.EventsMessage, msgID string) error {
	if len(message.Events) == 0 {
		return nil
	}

	data, err := p.json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	headers := map[string]string{
		jetstream.HeaderMsgID: msgID,
	}
	if err := p.publisher.Publish(ctx, jetstream.EventsSubject(message.Contract.Network), data, headers); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}

	metrics.PollerEventsPublishedInc(message.Contract.Network.Name(), len(message.Events))
	logger.DebugCtx(ctx, "Published live events",
		zap.String("listenerID", message.Listener.ID),
		zap.Uint64("from", message.From),
		zap.Uint64("to", message.To),
		zap.Int("count", len(message.Events)))
	return nil
}
