package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// ContractFilter narrows contract listings
type ContractFilter struct {
	Network *domain.NetworkID
	Address string // exact match, case insensitive
	Name    string // substring match, case insensitive
	Limit   int
	Offset  int
}

// ContractUpdate holds the mutable contract fields; nil leaves a field unchanged
type ContractUpdate struct {
	Name        *string
	ABI         datatypes.JSON
	StartHeight *uint64
	Enabled     *bool
}

// HistorySyncUpdate holds the mutable history sync fields; nil leaves a field unchanged
type HistorySyncUpdate struct {
	SyncHeight *uint64
	TaskID     *string
}

// ListenerWithSync is an event listener joined with its primary history sync
type ListenerWithSync struct {
	ID            string    `gorm:"column:id"`
	ContractID    string    `gorm:"column:contract_id"`
	Name          string    `gorm:"column:name"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	HistorySyncID *string   `gorm:"column:history_sync_id"`
	SyncHeight    *uint64   `gorm:"column:sync_height"`
	EndHeight     *uint64   `gorm:"column:end_height"`
	Promptly      bool      `gorm:"column:promptly"`
}

// NetworkSyncSummary aggregates sync state of one network
type NetworkSyncSummary struct {
	Network        domain.NetworkID `gorm:"column:network"`
	ContractsCount int64            `gorm:"column:contracts_count"`
	ListenersCount int64            `gorm:"column:listeners_count"`
	MaxSyncHeight  *uint64          `gorm:"column:max_sync_height"`
	MinSyncHeight  *uint64          `gorm:"column:min_sync_height"`
}

// ListenerSyncProgress is the perpetual sync cursor of one listener
type ListenerSyncProgress struct {
	ListenerID      string `gorm:"column:listener_id"`
	ListenerName    string `gorm:"column:listener_name"`
	ContractID      string `gorm:"column:contract_id"`
	ContractAddress string `gorm:"column:contract_address"`
	ContractName    string `gorm:"column:contract_name"`
	StartHeight     uint64 `gorm:"column:start_height"`
	HistorySyncID   string `gorm:"column:history_sync_id"`
	SyncHeight      uint64 `gorm:"column:sync_height"`
}

// Store defines the interface for database operations.
// Getters return nil, nil when the row does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateTask inserts a task, assigning an id when missing
	CreateTask(ctx context.Context, task *schema.Task) error
	// GetTaskByID retrieves a task by id
	GetTaskByID(ctx context.Context, id string) (*schema.Task, error)
	// SaveTaskOutcome persists status, info, error and start time of a task
	SaveTaskOutcome(ctx context.Context, task *schema.Task) error
	// SetTaskStatus overwrites the status of a task
	SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) error
	// ClaimTask moves a pending task to processing under dispatch token, reporting whether this caller won it
	ClaimTask(ctx context.Context, id string, token string) (bool, error)
	// AcquireTask spends the dispatch token of a processing task and refreshes its heartbeat.
	// Only one caller holding token can win.
	AcquireTask(ctx context.Context, id string, token string) (bool, error)
	// GetCandidateTasks returns pending tasks due at now, earliest start first then highest priority
	GetCandidateTasks(ctx context.Context, now time.Time, limit int) ([]schema.Task, error)
	// TouchTask refreshes the heartbeat of a processing task
	TouchTask(ctx context.Context, id string) error
	// ResetTask puts a task back to pending at startAt with the error cleared
	ResetTask(ctx context.Context, id string, startAt time.Time) error
	// ResetStaleTasks puts processing tasks without a heartbeat since before back to pending
	ResetStaleTasks(ctx context.Context, before time.Time) (int64, error)

	// CreateContract inserts a contract or returns the existing one with the same network and address
	CreateContract(ctx context.Context, contract *schema.Contract) (*schema.Contract, bool, error)
	// GetContractByID retrieves a contract by id
	GetContractByID(ctx context.Context, id string) (*schema.Contract, error)
	// ListContracts lists contracts matching filter
	ListContracts(ctx context.Context, filter ContractFilter) ([]schema.Contract, error)
	// CountContracts counts contracts matching filter, ignoring limit and offset
	CountContracts(ctx context.Context, filter ContractFilter) (int64, error)
	// UpdateContract applies update and returns the new row
	UpdateContract(ctx context.Context, id string, update ContractUpdate) (*schema.Contract, error)
	// DeleteContract removes a contract with its listeners and syncs
	DeleteContract(ctx context.Context, id string) (bool, error)
	// ListScannableContracts lists enabled contracts with an ABI and promptly listeners on network
	ListScannableContracts(ctx context.Context, network domain.NetworkID, limit, offset int) ([]schema.Contract, error)
	// CountScannableContracts counts what ListScannableContracts pages over
	CountScannableContracts(ctx context.Context, network domain.NetworkID) (int64, error)

	// CreateEventListener inserts a listener or returns the existing one with the same contract and name
	CreateEventListener(ctx context.Context, listener *schema.EventListener) (*schema.EventListener, bool, error)
	// GetEventListenerByID retrieves a listener by id
	GetEventListenerByID(ctx context.Context, id string) (*schema.EventListener, error)
	// ListEventListeners lists listeners of a contract with their sync state
	ListEventListeners(ctx context.Context, contractID string, limit, offset int) ([]ListenerWithSync, error)
	// CountEventListeners counts listeners of a contract
	CountEventListeners(ctx context.Context, contractID string) (int64, error)
	// UpdateEventListener renames a listener
	UpdateEventListener(ctx context.Context, id string, name string) (*schema.EventListener, error)
	// DeleteEventListener removes a listener with its syncs
	DeleteEventListener(ctx context.Context, id string) (bool, error)
	// ListPromptlyListeners lists listeners with a promptly sync among the given contracts
	ListPromptlyListeners(ctx context.Context, contractIDs []string) ([]schema.EventListener, error)

	// CreateHistorySync inserts a history sync row
	CreateHistorySync(ctx context.Context, sync *schema.HistorySync) error
	// GetHistorySyncByID retrieves a history sync by id
	GetHistorySyncByID(ctx context.Context, id string) (*schema.HistorySync, error)
	// ListHistorySyncs lists the history syncs of a listener
	ListHistorySyncs(ctx context.Context, listenerID string) ([]schema.HistorySync, error)
	// UpdateHistorySync applies update to a history sync
	UpdateHistorySync(ctx context.Context, id string, update HistorySyncUpdate) error
	// GetUnfinishedHistorySyncs lists rows of enabled contracts with an ABI that still have blocks to scan
	GetUnfinishedHistorySyncs(ctx context.Context) ([]schema.HistorySync, error)

	// CreatePromptlySync marks a listener for live polling, idempotently
	CreatePromptlySync(ctx context.Context, listenerID string) (*schema.PromptlySync, error)
	// GetPromptlySync retrieves the promptly sync of a listener
	GetPromptlySync(ctx context.Context, listenerID string) (*schema.PromptlySync, error)
	// DeletePromptlySync stops live polling of a listener
	DeletePromptlySync(ctx context.Context, listenerID string) (bool, error)

	// CreateWalletInteraction records a wallet sighting, ignoring duplicates
	CreateWalletInteraction(ctx context.Context, interaction *schema.WalletInteraction) (bool, error)
	// CreateEvent records an event occurrence, ignoring duplicates
	CreateEvent(ctx context.Context, event *schema.Event) (bool, error)
	// ListWalletInteractions lists the interactions of the given wallets, optionally on one network only
	ListWalletInteractions(ctx context.Context, wallets []string, network *domain.NetworkID) ([]schema.WalletInteraction, error)
	// CountUniqueWallets counts distinct wallets seen on a contract
	CountUniqueWallets(ctx context.Context, network domain.NetworkID, contract string) (int64, error)

	// GetNetworkSyncSummary aggregates perpetual sync cursors per network
	GetNetworkSyncSummary(ctx context.Context) ([]NetworkSyncSummary, error)
	// ListListenerSyncProgress lists perpetual sync cursors on a network, least advanced first
	ListListenerSyncProgress(ctx context.Context, network domain.NetworkID, limit, offset int) ([]ListenerSyncProgress, error)
	// CountListenerSyncProgress counts what ListListenerSyncProgress pages over
	CountListenerSyncProgress(ctx context.Context, network domain.NetworkID) (int64, error)
}
