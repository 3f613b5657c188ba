package historysync

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// ResolverConfig holds the history resolver settings
type ResolverConfig struct {
	// DeferDelay is how long a caught up perpetual sync waits before looking again
	DeferDelay time.Duration
	// PageSize bounds how many logs are attributed concurrently
	PageSize int
}

// Resolver advances one history sync by a single chunk per task
type Resolver struct {
	store    store.Store
	networks network.Registry
	clock    adapter.Clock
	json     adapter.JSON
	config   ResolverConfig
}

// NewResolver creates the interactionHistorySyncResolver handler
func NewResolver(cfg ResolverConfig, st store.Store, networks network.Registry, clock adapter.Clock, jsonAdapter adapter.JSON) *Resolver {
	if cfg.DeferDelay <= 0 {
		cfg.DeferDelay = domain.DefaultResolverDeferDelay
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.InteractionPageSize
	}
	return &Resolver{
		store:    st,
		networks: networks,
		clock:    clock,
		json:     jsonAdapter,
		config:   cfg,
	}
}

// syncTarget is everything a resolver run needs about its history sync
type syncTarget struct {
	sync     *schema.HistorySync
	listener *schema.EventListener
	contract *schema.Contract
}

func (r *Resolver) Handle(ctx context.Context, o queue.Outcome) (queue.Outcome, error) {
	task := o.Task()

	var params domain.IDParams
	if err := r.json.Unmarshal(task.Params, &params); err != nil {
		return o, fmt.Errorf("%w: failed to decode params: %v", domain.ErrInvalidInput, err)
	}

	target, err := r.load(ctx, params.ID)
	if err != nil {
		return o, err
	}

	net, err := r.networks.Network(ctx, target.contract.Network)
	if err != nil {
		return o, err
	}
	bound, err := net.Bind(target.contract.Address, target.contract.ABI)
	if err != nil {
		return o, err
	}
	filter, err := bound.Filter(target.listener.Name)
	if err != nil {
		return o, err
	}

	head, err := net.BlockNumber(ctx)
	if err != nil {
		return o, fmt.Errorf("failed to get block height: %w", err)
	}

	current, goal := Bounds(target.sync.SyncHeight, target.sync.EndHeight, head)
	interval, ok := NextInterval(current, goal, net.ChunkSize())
	if !ok {
		if target.sync.Perpetual() {
			return o.WithInfo(fmt.Sprintf("caught up at %d", current)).
				AsDeferred(r.clock.Now().Add(r.config.DeferDelay)), nil
		}
		return o.WithInfo(fmt.Sprintf("finished at %d", current)).AsDone(), nil
	}

	logs, err := filter.Query(ctx, interval.From, interval.To)
	if err != nil {
		return o, err
	}

	recorded, err := r.attribute(ctx, net, target, logs)
	if err != nil {
		return o, err
	}

	cursor := interval.Cursor
	if err := r.store.UpdateHistorySync(ctx, target.sync.ID, store.HistorySyncUpdate{SyncHeight: &cursor}); err != nil {
		return o, fmt.Errorf("failed to update sync height: %w", err)
	}

	networkName := target.contract.Network.Name()
	metrics.SyncHeightSet(networkName, target.contract.Address, cursor)
	metrics.InteractionsRecordedInc(networkName, recorded)

	logger.InfoCtx(ctx, "History sync advanced",
		zap.String("historySyncID", target.sync.ID),
		zap.String("network", networkName),
		zap.String("contract", target.contract.Address),
		zap.String("event", target.listener.Name),
		zap.Uint64("from", interval.From),
		zap.Uint64("to", interval.To),
		zap.Int("events", len(logs)),
		zap.Int("recorded", recorded))

	return o.WithInfo(fmt.Sprintf("synced %d-%d: %d events", interval.From, interval.To, len(logs))).AsDone(), nil
}

func (r *Resolver) load(ctx context.Context, id string) (*syncTarget, error) {
	sync, err := r.store.GetHistorySyncByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sync == nil {
		return nil, fmt.Errorf("%w: history sync %s", domain.ErrNotFound, id)
	}

	listener, err := r.store.GetEventListenerByID(ctx, sync.EventListenerID)
	if err != nil {
		return nil, err
	}
	if listener == nil {
		return nil, fmt.Errorf("%w: event listener %s", domain.ErrNotFound, sync.EventListenerID)
	}

	contract, err := r.store.GetContractByID(ctx, listener.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, listener.ContractID)
	}
	if !contract.Scannable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractDisabled, contract.ID)
	}

	return &syncTarget{sync: sync, listener: listener, contract: contract}, nil
}

// attribute records the sender of every log as a wallet interaction, page by
// page. Logs without a receipt or sender are skipped; store failures abort.
func (r *Resolver) attribute(ctx context.Context, net network.Network, target *syncTarget, logs []types.Log) (int, error) {
	var recorded atomic.Int64

	for start := 0; start < len(logs); start += r.config.PageSize {
		end := min(start+r.config.PageSize, len(logs))

		g, gctx := errgroup.WithContext(ctx)
		for _, log := range logs[start:end] {
			g.Go(func() error {
				created, err := r.attributeLog(gctx, net, target, log)
				if err != nil {
					return err
				}
				if created {
					recorded.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return int(recorded.Load()), err
		}
	}

	return int(recorded.Load()), nil
}

func (r *Resolver) attributeLog(ctx context.Context, net network.Network, target *syncTarget, log types.Log) (bool, error) {
	fields := []zap.Field{
		zap.String("txHash", log.TxHash.Hex()),
		zap.Uint64("blockNumber", log.BlockNumber),
	}

	if target.sync.SaveEvents {
		_, err := r.store.CreateEvent(ctx, &schema.Event{
			BlockNumber:     log.BlockNumber,
			TransactionHash: log.TxHash.Hex(),
			Event:           target.listener.Name,
		})
		if err != nil {
			return false, err
		}
	}

	receipt, err := net.TransactionReceipt(ctx, log.TxHash)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		logger.WarnCtx(ctx, "Skipping log without receipt", append(fields, zap.Error(err))...)
		return false, nil
	}
	if receipt == nil {
		logger.WarnCtx(ctx, "Skipping log without receipt", fields...)
		return false, nil
	}

	sender, err := net.TransactionSender(ctx, receipt)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		logger.WarnCtx(ctx, "Skipping log without sender", append(fields, zap.Error(err))...)
		return false, nil
	}

	return r.store.CreateWalletInteraction(ctx, &schema.WalletInteraction{
		Wallet:    strings.ToLower(sender.Hex()),
		Contract:  target.contract.Address,
		Network:   target.contract.Network,
		EventName: target.listener.Name,
	})
}
