package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/ratelimit"
)

// Registry hands out one client per configured network
//
//go:generate mockgen -source=network.go -destination=../mocks/network.go -package=mocks -mock_names=Registry=MockNetworkRegistry,Network=MockNetwork,BoundContract=MockBoundContract,EventFilter=MockEventFilter
type Registry interface {
	// Network returns the client of a configured network, dialing it on first use
	Network(ctx context.Context, id domain.NetworkID) (Network, error)
	// IDs lists the configured networks in ascending order
	IDs() []domain.NetworkID
	// Close closes every dialed client
	Close()
}

// Network is a rate limited, instrumented view of one chain
type Network interface {
	ID() domain.NetworkID
	// ChunkSize is the widest block range a single log query may span
	ChunkSize() uint64
	// BlockNumber returns the current head, served from a short lived cache
	BlockNumber(ctx context.Context) (uint64, error)
	// Bind parses a JSON ABI and binds it to a contract address
	Bind(address string, abiJSON []byte) (BoundContract, error)
	// TransactionReceipt returns nil without error when the node has no receipt
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	// TransactionSender returns the signer of the transaction a receipt belongs to
	TransactionSender(ctx context.Context, receipt *types.Receipt) (common.Address, error)
}

// BoundContract is a contract ABI bound to an address on a network
type BoundContract interface {
	Address() common.Address
	// Filter returns the log filter of one event declared in the ABI
	Filter(eventName string) (EventFilter, error)
	// Normalize decodes a log emitted by the contract into its wire form
	Normalize(log types.Log) (domain.NormalizedEvent, error)
}

// EventFilter queries the logs of one event of a bound contract
type EventFilter interface {
	Event() string
	// Query returns matching logs in the inclusive range [from, to]
	Query(ctx context.Context, from uint64, to uint64) ([]types.Log, error)
}

type evmNetwork struct {
	id      domain.NetworkID
	cfg     config.NetworkConfig
	client  adapter.EthClient
	limiter ratelimit.Limiter
	head    *headCache
}

func newNetwork(id domain.NetworkID, cfg config.NetworkConfig, client adapter.EthClient, limiter ratelimit.Limiter, clock adapter.Clock) *evmNetwork {
	n := &evmNetwork{
		id:      id,
		cfg:     cfg,
		client:  client,
		limiter: limiter,
	}
	n.head = newHeadCache(n.fetchBlockNumber, cfg.BlockHeadTTL, cfg.BlockHeadStaleWindow, clock)
	return n
}

func (n *evmNetwork) ID() domain.NetworkID {
	return n.id
}

func (n *evmNetwork) ChunkSize() uint64 {
	return n.cfg.ChunkSize
}

func (n *evmNetwork) BlockNumber(ctx context.Context) (uint64, error) {
	return n.head.get(ctx)
}

func (n *evmNetwork) fetchBlockNumber(ctx context.Context) (uint64, error) {
	var height uint64
	err := n.call(ctx, "eth_blockNumber", func(ctx context.Context) error {
		var err error
		height, err = n.client.BlockNumber(ctx)
		return err
	})
	return height, err
}

func (n *evmNetwork) Bind(address string, abiJSON []byte) (BoundContract, error) {
	if !domain.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: invalid contract address %q", domain.ErrInvalidInput, address)
	}
	if len(abiJSON) == 0 {
		return nil, fmt.Errorf("%w: contract %s has no abi", domain.ErrInvalidInput, address)
	}

	parsed, err := ParseABI(abiJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %s: %w", address, err)
	}

	unnamed, err := unnamedEventInputs(abiJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse abi of %s: %v", domain.ErrInvalidInput, address, err)
	}

	return &boundContract{
		network: n,
		address: common.HexToAddress(address),
		abi:     parsed,
		unnamed: unnamed,
	}, nil
}

func (n *evmNetwork) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := n.call(ctx, "eth_getTransactionReceipt", func(ctx context.Context) error {
		var err error
		receipt, err = n.client.TransactionReceipt(ctx, txHash)
		return err
	})
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt of %s: %w", txHash.Hex(), err)
	}
	return receipt, nil
}

func (n *evmNetwork) TransactionSender(ctx context.Context, receipt *types.Receipt) (common.Address, error) {
	if receipt == nil {
		return common.Address{}, fmt.Errorf("%w: nil receipt", domain.ErrInvalidInput)
	}

	var tx *types.Transaction
	err := n.call(ctx, "eth_getTransactionByHash", func(ctx context.Context) error {
		var err error
		tx, _, err = n.client.TransactionByHash(ctx, receipt.TxHash)
		return err
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get transaction %s: %w", receipt.TxHash.Hex(), err)
	}

	var sender common.Address
	err = n.call(ctx, "eth_getTransactionByBlockHashAndIndex", func(ctx context.Context) error {
		var err error
		sender, err = n.client.TransactionSender(ctx, tx, receipt.BlockHash, receipt.TransactionIndex)
		return err
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get sender of %s: %w", receipt.TxHash.Hex(), err)
	}

	return sender, nil
}

// call waits for the network's rate limiter and records the request metrics
func (n *evmNetwork) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	name := n.id.Name()
	if err := n.limiter.Wait(ctx, name); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	metrics.RPCRequestInc(name, method)
	err := fn(ctx)
	metrics.RPCRequestDuration(name, method, time.Since(start))
	if err != nil && !errors.Is(err, ethereum.NotFound) {
		metrics.RPCErrorsInc(name, method)
	}

	return err
}
