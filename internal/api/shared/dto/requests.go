package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// CreateContractRequest represents the request body for registering a contract
type CreateContractRequest struct {
	Name        string           `json:"name"`
	Network     domain.NetworkID `json:"network"`
	Address     string           `json:"address"`
	StartHeight *uint64          `json:"start_height"`
	ABI         json.RawMessage  `json:"abi"`
}

// Validate validates the request body and normalizes the address and ABI
func (r *CreateContractRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if len(r.Name) > constants.MAX_CONTRACT_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_CONTRACT_NAME_LENGTH))
	}

	if !r.Network.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported network: %d", r.Network))
	}

	if !domain.IsValidAddress(strings.TrimSpace(r.Address)) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid address: %s", r.Address))
	}
	r.Address = domain.NormalizeAddress(r.Address)

	if r.StartHeight == nil {
		return apierrors.NewValidationError("start_height is required")
	}

	abi, err := normalizeABI(r.ABI)
	if err != nil {
		return err
	}
	r.ABI = abi

	return nil
}

// UpdateContractRequest represents the request body for updating a contract.
// Omitted fields are left unchanged.
type UpdateContractRequest struct {
	Name        *string         `json:"name"`
	StartHeight *uint64         `json:"start_height"`
	ABI         json.RawMessage `json:"abi"`
	Enabled     *bool           `json:"enabled"`
}

// Validate validates the request body
func (r *UpdateContractRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return apierrors.NewValidationError("name must not be empty")
		}
		if len(name) > constants.MAX_CONTRACT_NAME_LENGTH {
			return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_CONTRACT_NAME_LENGTH))
		}
		r.Name = &name
	}

	if len(r.ABI) > 0 && string(r.ABI) != "null" {
		abi, err := normalizeABI(r.ABI)
		if err != nil {
			return err
		}
		r.ABI = abi
	} else {
		r.ABI = nil
	}

	if r.Name == nil && r.StartHeight == nil && r.ABI == nil && r.Enabled == nil {
		return apierrors.NewValidationError("nothing to update")
	}
	return nil
}

// normalizeABI accepts the ABI either as a JSON array or as a string holding one
func normalizeABI(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, apierrors.NewValidationError("abi is required")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, apierrors.NewValidationError("invalid abi")
		}
		raw = bytes.TrimSpace([]byte(s))
	}

	if len(raw) == 0 || raw[0] != '[' || !json.Valid(raw) {
		return nil, apierrors.NewValidationError("abi must be a JSON array")
	}
	return raw, nil
}

// EventListenerRequest represents the request body for creating or renaming a listener
type EventListenerRequest struct {
	Name string `json:"name"`
}

// Validate validates the request body
func (r *EventListenerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if len(r.Name) > constants.MAX_LISTENER_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_LISTENER_NAME_LENGTH))
	}
	return nil
}

// CreateHistorySyncRequest represents the request body for a bounded backfill.
// SyncHeight defaults to the contract start height; EndHeight may lie below it
// to scan backward.
type CreateHistorySyncRequest struct {
	SyncHeight *uint64 `json:"sync_height"`
	EndHeight  *uint64 `json:"end_height"`
	SaveEvents bool    `json:"save_events"`
}

// Validate validates the request body
func (r *CreateHistorySyncRequest) Validate() error {
	if r.EndHeight == nil {
		return apierrors.NewValidationError("end_height is required")
	}
	if r.SyncHeight != nil && *r.SyncHeight == *r.EndHeight {
		return apierrors.NewValidationError("sync_height and end_height must differ")
	}
	return nil
}

// BulkAddressRequest is the body of the bulk wallet lookup, a plain JSON array
type BulkAddressRequest []string

// Validate validates the request body and normalizes the addresses
func (r BulkAddressRequest) Validate() error {
	if len(r) == 0 {
		return apierrors.NewValidationError("addresses is required")
	}
	if len(r) > constants.MAX_ADDRESSES_PER_BULK_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d addresses allowed", constants.MAX_ADDRESSES_PER_BULK_REQUEST))
	}
	for i, address := range r {
		if !domain.IsValidAddress(strings.TrimSpace(address)) {
			return apierrors.NewValidationError(fmt.Sprintf("invalid address: %s", address))
		}
		r[i] = domain.NormalizeAddress(address)
	}
	return nil
}
