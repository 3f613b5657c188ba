package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// ContractResponse represents a registered contract
type ContractResponse struct {
	ID          string           `json:"id"`
	Network     domain.NetworkID `json:"network"`
	Address     string           `json:"address"`
	Name        string           `json:"name"`
	ABI         json.RawMessage  `json:"abi,omitempty"`
	StartHeight uint64           `json:"start_height"`
	Enabled     bool             `json:"enabled"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ContractListResponse represents a paginated list of contracts
type ContractListResponse struct {
	Contracts []ContractResponse `json:"items"`
	Offset    *uint64            `json:"offset,omitempty"`
	Total     uint64             `json:"total"`
}

// CountResponse is served instead of a list when the caller only asks for the count
type CountResponse struct {
	Count int64 `json:"count"`
}

// ContractStatisticsResponse aggregates what has been recorded for a contract
type ContractStatisticsResponse struct {
	UniqueWalletsCount int64 `json:"unique_wallets_count"`
}

// MapContractToDTO maps a schema.Contract to ContractResponse
func MapContractToDTO(contract *schema.Contract) *ContractResponse {
	resp := &ContractResponse{
		ID:          contract.ID,
		Network:     contract.Network,
		Address:     contract.Address,
		Name:        contract.Name,
		StartHeight: contract.StartHeight,
		Enabled:     contract.Enabled,
		CreatedAt:   contract.CreatedAt,
		UpdatedAt:   contract.UpdatedAt,
	}
	if len(contract.ABI) > 0 {
		resp.ABI = json.RawMessage(contract.ABI)
	}
	return resp
}
