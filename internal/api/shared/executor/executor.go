package executor

import (
	"context"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

// Executor is the interface for the API executor.
// Getters return nil without error when the addressed row does not exist.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListContracts lists contracts matching filter
	ListContracts(ctx context.Context, filter store.ContractFilter) (*dto.ContractListResponse, error)
	// CountContracts counts contracts matching filter
	CountContracts(ctx context.Context, filter store.ContractFilter) (*dto.CountResponse, error)
	// GetContract retrieves a contract by id
	GetContract(ctx context.Context, id string) (*dto.ContractResponse, error)
	// CreateContract registers a contract, returning the existing one for a known network and address
	CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, bool, error)
	// UpdateContract applies the fields set in req
	UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error)
	// DeleteContract removes a contract with its listeners and syncs
	DeleteContract(ctx context.Context, id string) (bool, error)
	// GetContractStatistics aggregates the interactions recorded for a contract
	GetContractStatistics(ctx context.Context, id string) (*dto.ContractStatisticsResponse, error)

	// ListEventListeners lists the listeners of a contract with their sync progress
	ListEventListeners(ctx context.Context, contractID string, limit, offset int) (*dto.EventListenerListResponse, error)
	// CountEventListeners counts the listeners of a contract
	CountEventListeners(ctx context.Context, contractID string) (*dto.CountResponse, error)
	// GetEventListener retrieves a listener of a contract
	GetEventListener(ctx context.Context, contractID, listenerID string) (*dto.EventListenerResponse, error)
	// CreateEventListener tracks an event of a contract and provisions its history sync when new
	CreateEventListener(ctx context.Context, contractID string, req dto.EventListenerRequest) (*dto.EventListenerResponse, bool, error)
	// UpdateEventListener renames a listener of a contract
	UpdateEventListener(ctx context.Context, contractID, listenerID string, req dto.EventListenerRequest) (*dto.EventListenerResponse, error)
	// DeleteEventListener removes a listener of a contract with its syncs
	DeleteEventListener(ctx context.Context, contractID, listenerID string) (bool, error)

	// ListHistorySyncs lists the history syncs of a listener
	ListHistorySyncs(ctx context.Context, listenerID string) (*dto.HistorySyncListResponse, error)
	// CreateHistorySync starts a bounded backfill of a listener
	CreateHistorySync(ctx context.Context, listenerID string, req dto.CreateHistorySyncRequest) (*dto.HistorySyncResponse, error)
	// EnablePromptlySync marks a listener for live polling
	EnablePromptlySync(ctx context.Context, listenerID string) (*dto.PromptlySyncResponse, error)
	// DisablePromptlySync stops live polling of a listener
	DisablePromptlySync(ctx context.Context, listenerID string) (bool, error)

	// GetSyncProgressReport summarizes sync progress per network
	GetSyncProgressReport(ctx context.Context) (*dto.SyncProgressReport, error)
	// GetNetworkSyncProgress lists listener cursors of one network, least advanced first
	GetNetworkSyncProgress(ctx context.Context, network domain.NetworkID, limit, offset int) (*dto.ListenerSyncProgressListResponse, error)

	// GetTask retrieves a task by id
	GetTask(ctx context.Context, id string) (*dto.TaskResponse, error)

	// GetAddressInteractions lists the contract events a wallet triggered
	GetAddressInteractions(ctx context.Context, address string, network *domain.NetworkID) ([]dto.AddressInteraction, error)
	// GetBulkAddressInteractions groups the contracts a set of wallets interacted with
	GetBulkAddressInteractions(ctx context.Context, addresses []string) (dto.BulkAddressInteractions, error)
}

type executor struct {
	store    store.Store
	queue    queue.Queue
	networks network.Registry
	jcs      adapter.JCS
}

func NewExecutor(st store.Store, q queue.Queue, networks network.Registry, jcs adapter.JCS) Executor {
	return &executor{
		store:    st,
		queue:    q,
		networks: networks,
		jcs:      jcs,
	}
}

// nextOffset is the offset of the following page, nil on the last one
func nextOffset(offset, count int, total int64) *uint64 {
	if int64(offset+count) >= total {
		return nil
	}
	next := uint64(offset + count) //nolint:gosec,G115
	return &next
}
