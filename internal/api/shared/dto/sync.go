package dto

import (
	"time"

	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// HistorySyncResponse represents a history sync row
type HistorySyncResponse struct {
	ID              string    `json:"id"`
	EventListenerID string    `json:"event_listener_id"`
	SyncHeight      uint64    `json:"sync_height"`
	EndHeight       *uint64   `json:"end_height,omitempty"`
	TaskID          *string   `json:"task_id,omitempty"`
	SaveEvents      bool      `json:"save_events"`
	Finished        bool      `json:"finished"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HistorySyncListResponse lists the history syncs of a listener
type HistorySyncListResponse struct {
	HistorySyncs []HistorySyncResponse `json:"items"`
	Total        uint64                `json:"total"`
}

// PromptlySyncResponse represents the live polling mark of a listener
type PromptlySyncResponse struct {
	ID              string    `json:"id"`
	EventListenerID string    `json:"event_listener_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapHistorySyncToDTO maps a schema.HistorySync to HistorySyncResponse
func MapHistorySyncToDTO(sync *schema.HistorySync) HistorySyncResponse {
	return HistorySyncResponse{
		ID:              sync.ID,
		EventListenerID: sync.EventListenerID,
		SyncHeight:      sync.SyncHeight,
		EndHeight:       sync.EndHeight,
		TaskID:          sync.TaskID,
		SaveEvents:      sync.SaveEvents,
		Finished:        sync.Finished(),
		CreatedAt:       sync.CreatedAt,
		UpdatedAt:       sync.UpdatedAt,
	}
}

// MapPromptlySyncToDTO maps a schema.PromptlySync to PromptlySyncResponse
func MapPromptlySyncToDTO(sync *schema.PromptlySync) *PromptlySyncResponse {
	return &PromptlySyncResponse{
		ID:              sync.ID,
		EventListenerID: sync.EventListenerID,
		CreatedAt:       sync.CreatedAt,
	}
}
