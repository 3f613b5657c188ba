package network

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

type boundContract struct {
	network *evmNetwork
	address common.Address
	abi     abi.ABI
	// unnamed holds, per event id, the input positions the abi left unnamed
	unnamed map[common.Hash]map[int]bool
}

func (c *boundContract) Address() common.Address {
	return c.address
}

func (c *boundContract) Filter(eventName string) (EventFilter, error) {
	event, ok := c.abi.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotInInterface, eventName)
	}

	return &eventFilter{
		contract: c,
		event:    event,
	}, nil
}

func (c *boundContract) Normalize(log types.Log) (domain.NormalizedEvent, error) {
	return normalizeLog(c.abi, c.unnamed, log)
}

type eventFilter struct {
	contract *boundContract
	event    abi.Event
}

func (f *eventFilter) Event() string {
	return f.event.Name
}

// Query walks [from, to] in windows [c, c+step] of the network chunk size, the
// same shape as a resolver chunk, so one chunk is one eth_getLogs call. A
// window the node rejects for returning too many logs is retried at half the step.
func (f *eventFilter) Query(ctx context.Context, from uint64, to uint64) ([]types.Log, error) {
	if from > to {
		return nil, nil
	}

	n := f.contract.network
	step := n.ChunkSize()
	if step == 0 {
		step = domain.DefaultHistorySyncStep
	}

	var logs []types.Log
	current := from
	for current <= to {
		upper := to
		if to-current > step {
			upper = current + step
		}

		query := ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(current),
			ToBlock:   new(big.Int).SetUint64(upper),
			Addresses: []common.Address{f.contract.address},
			Topics:    [][]common.Hash{{f.event.ID}},
		}

		var page []types.Log
		err := n.call(ctx, "eth_getLogs", func(ctx context.Context) error {
			var err error
			page, err = n.client.FilterLogs(ctx, query)
			return err
		})
		if err == nil {
			logs = append(logs, page...)
			if upper == to {
				break
			}
			current = upper + 1
			continue
		}

		if !isTooManyResultsError(err) || step == 0 {
			return nil, fmt.Errorf("failed to get %s logs for range %d-%d: %w", f.event.Name, current, upper, err)
		}

		step /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.String("network", n.id.Name()),
			zap.String("event", f.event.Name),
			zap.Uint64("fromBlock", current),
			zap.Uint64("toBlock", upper),
			zap.Uint64("newStepSize", step))
	}

	return logs, nil
}

// isTooManyResultsError matches the range errors of common RPC providers
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "query returned more than") ||
		strings.Contains(msg, "query timeout exceeded") ||
		strings.Contains(msg, "too many results") ||
		strings.Contains(msg, "exceeded maximum") ||
		strings.Contains(msg, "block range is too wide") ||
		strings.Contains(msg, "log response size exceeded")
}
