package dto

import (
	"math"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// EventListenerResponse represents an event listener of a contract
type EventListenerResponse struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	Name       string    `json:"name"`
	Promptly   *bool     `json:"promptly,omitempty"`
	Sync       *SyncInfo `json:"sync,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SyncInfo is the progress of the perpetual history sync of a listener.
// Progress is a percentage of the blocks between start height and head.
type SyncInfo struct {
	HistorySyncID *string `json:"history_sync_id,omitempty"`
	CurrentBlock  uint64  `json:"current_block"`
	SyncHeight    uint64  `json:"sync_height"`
	Progress      int64   `json:"progress"`
}

// EventListenerListResponse represents a paginated list of event listeners
type EventListenerListResponse struct {
	EventListeners []EventListenerResponse `json:"items"`
	Offset         *uint64                 `json:"offset,omitempty"`
	Total          uint64                  `json:"total"`
}

// MapEventListenerToDTO maps a schema.EventListener to EventListenerResponse
func MapEventListenerToDTO(listener *schema.EventListener) *EventListenerResponse {
	return &EventListenerResponse{
		ID:         listener.ID,
		ContractID: listener.ContractID,
		Name:       listener.Name,
		CreatedAt:  listener.CreatedAt,
		UpdatedAt:  listener.UpdatedAt,
	}
}

// MapListenerWithSyncToDTO maps a listener row joined with its sync state,
// computing progress against currentBlock
func MapListenerWithSyncToDTO(row store.ListenerWithSync, startHeight, currentBlock uint64) EventListenerResponse {
	promptly := row.Promptly
	var syncHeight uint64
	if row.SyncHeight != nil {
		syncHeight = *row.SyncHeight
	}

	return EventListenerResponse{
		ID:         row.ID,
		ContractID: row.ContractID,
		Name:       row.Name,
		Promptly:   &promptly,
		Sync: &SyncInfo{
			HistorySyncID: row.HistorySyncID,
			CurrentBlock:  currentBlock,
			SyncHeight:    syncHeight,
			Progress:      Progress(syncHeight, startHeight, currentBlock),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Progress returns the rounded percentage of [start, head] covered up to height.
// The result is clamped to [0, 100]; an unknown head (0) reports no progress.
func Progress(height, start, head uint64) int64 {
	if head == 0 {
		return 0
	}
	if head <= start {
		if height >= start {
			return 100
		}
		return 0
	}
	if height <= start {
		return 0
	}
	if height >= head {
		return 100
	}
	return int64(math.Round(float64(height-start) / float64(head-start) * 100))
}
