package schema

import "time"

// HistorySync represents the history_syncs table
type HistorySync struct {
	// ID is the row identifier
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// EventListenerID is the listener being synced
	EventListenerID string `gorm:"column:event_listener_id;not null;type:uuid"`
	// SyncHeight is the cursor, the next block to scan
	SyncHeight uint64 `gorm:"column:sync_height;not null"`
	// EndHeight bounds a backfill; nil means follow the chain head forever
	EndHeight *uint64 `gorm:"column:end_height"`
	// TaskID references the resolver task currently driving the row
	TaskID *string `gorm:"column:task_id;type:uuid"`
	// SaveEvents also records raw event rows
	SaveEvents bool `gorm:"column:save_events;not null"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (HistorySync) TableName() string {
	return "history_syncs"
}

// Perpetual reports whether the row follows the chain head without an end
func (h *HistorySync) Perpetual() bool {
	return h.EndHeight == nil
}

// Finished reports whether a bounded row reached its end height
func (h *HistorySync) Finished() bool {
	return h.EndHeight != nil && h.SyncHeight == *h.EndHeight
}
