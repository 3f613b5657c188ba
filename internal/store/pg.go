package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// primary routes db to the write connection when a read resolver is registered
func primary(db *gorm.DB) *gorm.DB {
	if hasDBResolver(db) {
		return db.Clauses(dbresolver.Write)
	}
	return db
}

// firstOrNil runs query against the replica first and, when a read resolver is
// registered, retries on the primary before reporting not found
func firstOrNil[T any](ctx context.Context, db *gorm.DB, query func(*gorm.DB) *gorm.DB) (*T, error) {
	var row T
	err := query(db.WithContext(ctx)).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !hasDBResolver(db) {
		return nil, nil
	}

	// Replica can lag behind primary
	err = query(db.WithContext(ctx).Clauses(dbresolver.Write)).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// =============================================================================
// Tasks
// =============================================================================

func (s *pgStore) CreateTask(ctx context.Context, task *schema.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if len(task.Params) == 0 {
		task.Params = []byte("{}")
	}

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *pgStore) GetTaskByID(ctx context.Context, id string) (*schema.Task, error) {
	task, err := firstOrNil[schema.Task](ctx, s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return task, nil
}

func (s *pgStore) SaveTaskOutcome(ctx context.Context, task *schema.Task) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":   task.Status,
			"info":     task.Info,
			"error":    task.Error,
			"start_at": task.StartAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save task outcome: %w", err)
	}
	return nil
}

func (s *pgStore) SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to set task status: %w", err)
	}
	return nil
}

func (s *pgStore) ClaimTask(ctx context.Context, id string, token string) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ? AND status = ?", id, domain.TaskStatusPending).
		Updates(map[string]interface{}{
			"status":         domain.TaskStatusProcessing,
			"dispatch_token": token,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) AcquireTask(ctx context.Context, id string, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	result := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ? AND status = ? AND dispatch_token = ?", id, domain.TaskStatusProcessing, token).
		Updates(map[string]interface{}{
			"dispatch_token": "",
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to acquire task: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) GetCandidateTasks(ctx context.Context, now time.Time, limit int) ([]schema.Task, error) {
	var tasks []schema.Task
	err := primary(s.db).WithContext(ctx).
		Where("status = ? AND start_at <= ?", domain.TaskStatusPending, now).
		Order("start_at ASC, priority DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate tasks: %w", err)
	}
	return tasks, nil
}

func (s *pgStore) TouchTask(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ? AND status = ?", id, domain.TaskStatusProcessing).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to touch task: %w", err)
	}
	return nil
}

func (s *pgStore) ResetTask(ctx context.Context, id string, startAt time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         domain.TaskStatusPending,
			"start_at":       startAt,
			"error":          "",
			"retries":        gorm.Expr("retries + 1"),
			"dispatch_token": "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to reset task: %w", err)
	}
	return nil
}

func (s *pgStore) ResetStaleTasks(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Task{}).
		Where("status = ? AND updated_at < ?", domain.TaskStatusProcessing, before).
		Updates(map[string]interface{}{
			"status":         domain.TaskStatusPending,
			"retries":        gorm.Expr("retries + 1"),
			"dispatch_token": "",
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset stale tasks: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// =============================================================================
// Contracts
// =============================================================================

func (s *pgStore) CreateContract(ctx context.Context, contract *schema.Contract) (*schema.Contract, bool, error) {
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	contract.Address = domain.NormalizeAddress(contract.Address)

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "network"}, {Name: "address"}},
			DoNothing: true,
		}).
		Create(contract)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create contract: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return contract, true, nil
	}

	existing, err := firstOrNil[schema.Contract](ctx, primary(s.db), func(db *gorm.DB) *gorm.DB {
		return db.Where("network = ? AND address = ?", contract.Network, contract.Address)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get existing contract: %w", err)
	}
	if existing == nil {
		return nil, false, fmt.Errorf("contract %s on %d vanished after conflict", contract.Address, contract.Network)
	}
	return existing, false, nil
}

func (s *pgStore) GetContractByID(ctx context.Context, id string) (*schema.Contract, error) {
	contract, err := firstOrNil[schema.Contract](ctx, s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get contract %s: %w", id, err)
	}
	return contract, nil
}

func applyContractFilter(db *gorm.DB, filter ContractFilter) *gorm.DB {
	if filter.Network != nil {
		db = db.Where("network = ?", *filter.Network)
	}
	if filter.Address != "" {
		db = db.Where("address = ?", domain.NormalizeAddress(filter.Address))
	}
	if filter.Name != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	return db
}

func (s *pgStore) ListContracts(ctx context.Context, filter ContractFilter) ([]schema.Contract, error) {
	var contracts []schema.Contract
	query := applyContractFilter(s.db.WithContext(ctx).Model(&schema.Contract{}), filter).
		Order("created_at ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (s *pgStore) CountContracts(ctx context.Context, filter ContractFilter) (int64, error) {
	var count int64
	err := applyContractFilter(s.db.WithContext(ctx).Model(&schema.Contract{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	return count, nil
}

func (s *pgStore) UpdateContract(ctx context.Context, id string, update ContractUpdate) (*schema.Contract, error) {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if len(update.ABI) > 0 {
		updates["abi"] = update.ABI
	}
	if update.StartHeight != nil {
		updates["start_height"] = *update.StartHeight
	}
	if update.Enabled != nil {
		updates["enabled"] = *update.Enabled
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&schema.Contract{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update contract: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return s.GetContractByID(ctx, id)
}

func (s *pgStore) DeleteContract(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Contract{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete contract: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func scannableContracts(db *gorm.DB, network domain.NetworkID) *gorm.DB {
	return db.Model(&schema.Contract{}).
		Where("network = ? AND enabled = ? AND abi IS NOT NULL", network, true).
		Where(`EXISTS (
			SELECT 1 FROM event_listeners l
			JOIN promptly_syncs p ON p.event_listener_id = l.id
			WHERE l.contract_id = contracts.id)`)
}

func (s *pgStore) ListScannableContracts(ctx context.Context, network domain.NetworkID, limit, offset int) ([]schema.Contract, error) {
	var contracts []schema.Contract
	err := scannableContracts(s.db.WithContext(ctx), network).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scannable contracts: %w", err)
	}
	return contracts, nil
}

func (s *pgStore) CountScannableContracts(ctx context.Context, network domain.NetworkID) (int64, error) {
	var count int64
	if err := scannableContracts(s.db.WithContext(ctx), network).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count scannable contracts: %w", err)
	}
	return count, nil
}

// =============================================================================
// Event listeners
// =============================================================================

func (s *pgStore) CreateEventListener(ctx context.Context, listener *schema.EventListener) (*schema.EventListener, bool, error) {
	if listener.ID == "" {
		listener.ID = uuid.NewString()
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(listener)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create event listener: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return listener, true, nil
	}

	existing, err := firstOrNil[schema.EventListener](ctx, primary(s.db), func(db *gorm.DB) *gorm.DB {
		return db.Where("contract_id = ? AND name = ?", listener.ContractID, listener.Name)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get existing event listener: %w", err)
	}
	if existing == nil {
		return nil, false, fmt.Errorf("event listener %s vanished after conflict", listener.Name)
	}
	return existing, false, nil
}

func (s *pgStore) GetEventListenerByID(ctx context.Context, id string) (*schema.EventListener, error) {
	listener, err := firstOrNil[schema.EventListener](ctx, s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event listener %s: %w", id, err)
	}
	return listener, nil
}

const listListenersWithSyncSQL = `
SELECT l.id, l.contract_id, l.name, l.created_at, l.updated_at,
       h.id AS history_sync_id, h.sync_height, h.end_height,
       (p.id IS NOT NULL) AS promptly
FROM event_listeners l
LEFT JOIN LATERAL (
    SELECT id, sync_height, end_height
    FROM history_syncs
    WHERE event_listener_id = l.id
    ORDER BY (end_height IS NOT NULL), created_at
    LIMIT 1
) h ON TRUE
LEFT JOIN promptly_syncs p ON p.event_listener_id = l.id
WHERE l.contract_id = ?
ORDER BY l.created_at ASC, l.id ASC
LIMIT ? OFFSET ?`

func (s *pgStore) ListEventListeners(ctx context.Context, contractID string, limit, offset int) ([]ListenerWithSync, error) {
	var listeners []ListenerWithSync
	err := s.db.WithContext(ctx).Raw(listListenersWithSyncSQL, contractID, limit, offset).Scan(&listeners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list event listeners: %w", err)
	}
	return listeners, nil
}

func (s *pgStore) CountEventListeners(ctx context.Context, contractID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.EventListener{}).
		Where("contract_id = ?", contractID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count event listeners: %w", err)
	}
	return count, nil
}

func (s *pgStore) UpdateEventListener(ctx context.Context, id string, name string) (*schema.EventListener, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.EventListener{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update event listener: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetEventListenerByID(ctx, id)
}

func (s *pgStore) DeleteEventListener(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.EventListener{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete event listener: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) ListPromptlyListeners(ctx context.Context, contractIDs []string) ([]schema.EventListener, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}

	var listeners []schema.EventListener
	err := s.db.WithContext(ctx).
		Table("event_listeners AS l").
		Select("l.*").
		Joins("JOIN promptly_syncs p ON p.event_listener_id = l.id").
		Where("l.contract_id IN ?", contractIDs).
		Order("l.created_at ASC, l.id ASC").
		Find(&listeners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list promptly listeners: %w", err)
	}
	return listeners, nil
}

// =============================================================================
// History syncs
// =============================================================================

func (s *pgStore) CreateHistorySync(ctx context.Context, sync *schema.HistorySync) error {
	if sync.ID == "" {
		sync.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(sync).Error; err != nil {
		return fmt.Errorf("failed to create history sync: %w", err)
	}
	return nil
}

func (s *pgStore) GetHistorySyncByID(ctx context.Context, id string) (*schema.HistorySync, error) {
	sync, err := firstOrNil[schema.HistorySync](ctx, s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history sync %s: %w", id, err)
	}
	return sync, nil
}

func (s *pgStore) ListHistorySyncs(ctx context.Context, listenerID string) ([]schema.HistorySync, error) {
	var syncs []schema.HistorySync
	err := s.db.WithContext(ctx).
		Where("event_listener_id = ?", listenerID).
		Order("created_at ASC, id ASC").
		Find(&syncs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history syncs: %w", err)
	}
	return syncs, nil
}

func (s *pgStore) UpdateHistorySync(ctx context.Context, id string, update HistorySyncUpdate) error {
	updates := make(map[string]interface{})
	if update.SyncHeight != nil {
		updates["sync_height"] = *update.SyncHeight
	}
	if update.TaskID != nil {
		updates["task_id"] = *update.TaskID
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.HistorySync{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update history sync: %w", err)
	}
	return nil
}

func (s *pgStore) GetUnfinishedHistorySyncs(ctx context.Context) ([]schema.HistorySync, error) {
	var syncs []schema.HistorySync
	err := s.db.WithContext(ctx).
		Table("history_syncs AS h").
		Select("h.*").
		Joins("JOIN event_listeners l ON l.id = h.event_listener_id").
		Joins("JOIN contracts c ON c.id = l.contract_id").
		Where("c.enabled = ? AND c.abi IS NOT NULL", true).
		Where("h.end_height IS NULL OR h.sync_height <> h.end_height").
		Order("h.created_at ASC, h.id ASC").
		Find(&syncs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unfinished history syncs: %w", err)
	}
	return syncs, nil
}

// =============================================================================
// Promptly syncs
// =============================================================================

func (s *pgStore) CreatePromptlySync(ctx context.Context, listenerID string) (*schema.PromptlySync, error) {
	sync := &schema.PromptlySync{
		ID:              uuid.NewString(),
		EventListenerID: listenerID,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_listener_id"}},
			DoNothing: true,
		}).
		Create(sync)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create promptly sync: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return sync, nil
	}

	return s.GetPromptlySync(ctx, listenerID)
}

func (s *pgStore) GetPromptlySync(ctx context.Context, listenerID string) (*schema.PromptlySync, error) {
	sync, err := firstOrNil[schema.PromptlySync](ctx, s.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("event_listener_id = ?", listenerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get promptly sync: %w", err)
	}
	return sync, nil
}

func (s *pgStore) DeletePromptlySync(ctx context.Context, listenerID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("event_listener_id = ?", listenerID).
		Delete(&schema.PromptlySync{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete promptly sync: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// =============================================================================
// Interactions and events
// =============================================================================

func (s *pgStore) CreateWalletInteraction(ctx context.Context, interaction *schema.WalletInteraction) (bool, error) {
	interaction.Wallet = domain.NormalizeAddress(interaction.Wallet)
	interaction.Contract = domain.NormalizeAddress(interaction.Contract)

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "network"},
				{Name: "contract"},
				{Name: "event_name"},
				{Name: "wallet"},
			},
			DoNothing: true,
		}).
		Create(interaction)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create wallet interaction: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) CreateEvent(ctx context.Context, event *schema.Event) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_hash"}, {Name: "event"}},
			DoNothing: true,
		}).
		Create(event)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create event: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) ListWalletInteractions(ctx context.Context, wallets []string, network *domain.NetworkID) ([]schema.WalletInteraction, error) {
	if len(wallets) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(wallets))
	for i, w := range wallets {
		normalized[i] = domain.NormalizeAddress(w)
	}

	query := s.db.WithContext(ctx).Where("wallet IN ?", normalized)
	if network != nil {
		query = query.Where("network = ?", *network)
	}

	var interactions []schema.WalletInteraction
	if err := query.Order("id ASC").Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallet interactions: %w", err)
	}
	return interactions, nil
}

func (s *pgStore) CountUniqueWallets(ctx context.Context, network domain.NetworkID, contract string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.WalletInteraction{}).
		Where("network = ? AND contract = ?", network, domain.NormalizeAddress(contract)).
		Distinct("wallet").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unique wallets: %w", err)
	}
	return count, nil
}

// =============================================================================
// Reports
// =============================================================================

const networkSyncSummarySQL = `
SELECT c.network,
       COUNT(DISTINCT c.id) AS contracts_count,
       COUNT(DISTINCT l.id) AS listeners_count,
       MAX(h.sync_height) AS max_sync_height,
       MIN(h.sync_height) AS min_sync_height
FROM contracts c
LEFT JOIN event_listeners l ON l.contract_id = c.id
LEFT JOIN history_syncs h ON h.event_listener_id = l.id AND h.end_height IS NULL
WHERE c.abi IS NOT NULL AND c.enabled
GROUP BY c.network
ORDER BY c.network ASC`

func (s *pgStore) GetNetworkSyncSummary(ctx context.Context) ([]NetworkSyncSummary, error) {
	var summaries []NetworkSyncSummary
	if err := s.db.WithContext(ctx).Raw(networkSyncSummarySQL).Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to get network sync summary: %w", err)
	}
	return summaries, nil
}

func listenerSyncProgress(db *gorm.DB, network domain.NetworkID) *gorm.DB {
	return db.Table("history_syncs AS h").
		Joins("JOIN event_listeners l ON l.id = h.event_listener_id").
		Joins("JOIN contracts c ON c.id = l.contract_id").
		Where("c.network = ? AND h.end_height IS NULL", network)
}

func (s *pgStore) ListListenerSyncProgress(ctx context.Context, network domain.NetworkID, limit, offset int) ([]ListenerSyncProgress, error) {
	var rows []ListenerSyncProgress
	err := listenerSyncProgress(s.db.WithContext(ctx), network).
		Select(`l.id AS listener_id, l.name AS listener_name,
			c.id AS contract_id, c.address AS contract_address, c.name AS contract_name, c.start_height,
			h.id AS history_sync_id, h.sync_height`).
		Order("h.sync_height ASC, h.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listener sync progress: %w", err)
	}
	return rows, nil
}

func (s *pgStore) CountListenerSyncProgress(ctx context.Context, network domain.NetworkID) (int64, error) {
	var count int64
	if err := listenerSyncProgress(s.db.WithContext(ctx), network).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count listener sync progress: %w", err)
	}
	return count, nil
}
