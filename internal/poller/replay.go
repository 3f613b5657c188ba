package poller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

// ParseInterval parses a "from-to" block range
func ParseInterval(s string) (uint64, uint64, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: interval %q is not from-to", domain.ErrInvalidInput, s)
	}
	from, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: interval start %q", domain.ErrInvalidInput, parts[0])
	}
	to, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: interval end %q", domain.ErrInvalidInput, parts[1])
	}
	if from > to {
		return 0, 0, fmt.Errorf("%w: interval %d-%d is reversed", domain.ErrInvalidInput, from, to)
	}
	return from, to, nil
}

// Replay publishes what a promptly listener on networkID matches in [from, to],
// returning the number of events published. The live cursor is left untouched.
func (p *Poller) Replay(ctx context.Context, networkID domain.NetworkID, listenerID string, from, to uint64) (int, error) {
	if from > to {
		return 0, fmt.Errorf("%w: interval %d-%d is reversed", domain.ErrInvalidInput, from, to)
	}

	listener, err := p.store.GetEventListenerByID(ctx, listenerID)
	if err != nil {
		return 0, err
	}
	if listener == nil {
		return 0, fmt.Errorf("%w: event listener %s", domain.ErrNotFound, listenerID)
	}
	promptly, err := p.store.GetPromptlySync(ctx, listenerID)
	if err != nil {
		return 0, err
	}
	if promptly == nil {
		return 0, fmt.Errorf("%w: event listener %s is not promptly synced", domain.ErrNotFound, listenerID)
	}

	contract, err := p.store.GetContractByID(ctx, listener.ContractID)
	if err != nil {
		return 0, err
	}
	if contract == nil || contract.Network != networkID || len(contract.ABI) == 0 {
		return 0, fmt.Errorf("%w: contract %s on network %d", domain.ErrNotFound, listener.ContractID, networkID)
	}

	net, err := p.networks.Network(ctx, networkID)
	if err != nil {
		return 0, err
	}
	bound, err := net.Bind(contract.Address, contract.ABI)
	if err != nil {
		return 0, err
	}
	filter, err := bound.Filter(listener.Name)
	if err != nil {
		return 0, err
	}

	logs, err := filter.Query(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if len(logs) == 0 {
		logger.InfoCtx(ctx, "No events found", zap.Uint64("from", from), zap.Uint64("to", to))
		return 0, nil
	}

	message := p.buildMessage(ctx, bound, contract, *listener, from, to, logs)
	// replays are deliberate, a fresh id keeps the broker from deduplicating them
	if err := p.publish(ctx, message, batchID(message)+":"+ulid.Make().String()); err != nil {
		return 0, err
	}
	return len(message.Events), nil
}
