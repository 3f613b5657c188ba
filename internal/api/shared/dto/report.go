package dto

import (
	"math"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// NetworkSyncProgress summarizes the perpetual sync cursors of one network
type NetworkSyncProgress struct {
	Network        domain.NetworkID `json:"network"`
	Name           string           `json:"name"`
	BlockNumber    *uint64          `json:"block_number"`
	ContractsCount int64            `json:"contracts_count"`
	ListenersCount int64            `json:"listeners_count"`
	Progress       ProgressRange    `json:"progress"`
	Error          string           `json:"error,omitempty"`
}

// ProgressRange holds the most and least advanced cursor as a percentage of head
type ProgressRange struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// SyncProgressReport lists the sync progress of every network with listeners
type SyncProgressReport struct {
	Networks []NetworkSyncProgress `json:"items"`
}

// ListenerSyncProgress is the cursor of one listener on a network
type ListenerSyncProgress struct {
	ListenerID      string  `json:"listener_id"`
	ListenerName    string  `json:"listener_name"`
	ContractID      string  `json:"contract_id"`
	ContractAddress string  `json:"contract_address"`
	ContractName    string  `json:"contract_name"`
	HistorySyncID   string  `json:"history_sync_id"`
	StartHeight     uint64  `json:"start_height"`
	SyncHeight      uint64  `json:"sync_height"`
	Progress        float64 `json:"progress"`
}

// ListenerSyncProgressListResponse represents a paginated list of listener cursors
type ListenerSyncProgressListResponse struct {
	Network     domain.NetworkID       `json:"network"`
	BlockNumber uint64                 `json:"block_number"`
	Listeners   []ListenerSyncProgress `json:"items"`
	Offset      *uint64                `json:"offset,omitempty"`
	Total       uint64                 `json:"total"`
}

// HeightPercent returns height as a percentage of head with two decimals
func HeightPercent(height, head uint64) float64 {
	if head == 0 {
		return 0
	}
	if height >= head {
		return 100
	}
	return math.Round(float64(height)/float64(head)*10000) / 100
}
