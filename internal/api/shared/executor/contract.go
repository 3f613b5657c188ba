package executor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/network"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func (e *executor) ListContracts(ctx context.Context, filter store.ContractFilter) (*dto.ContractListResponse, error) {
	contracts, err := e.store.ListContracts(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list contracts: %v", err))
	}
	total, err := e.store.CountContracts(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count contracts: %v", err))
	}

	items := make([]dto.ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = *dto.MapContractToDTO(&contracts[i])
	}

	return &dto.ContractListResponse{
		Contracts: items,
		Offset:    nextOffset(filter.Offset, len(items), total),
		Total:     uint64(total), //nolint:gosec,G115
	}, nil
}

func (e *executor) CountContracts(ctx context.Context, filter store.ContractFilter) (*dto.CountResponse, error) {
	count, err := e.store.CountContracts(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count contracts: %v", err))
	}
	return &dto.CountResponse{Count: count}, nil
}

func (e *executor) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	contract, err := e.store.GetContractByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}
	return dto.MapContractToDTO(contract), nil
}

func (e *executor) CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, bool, error) {
	canonical, err := e.canonicalABI(req.ABI)
	if err != nil {
		return nil, false, err
	}

	contract, created, err := e.store.CreateContract(ctx, &schema.Contract{
		Network:     req.Network,
		Address:     req.Address,
		Name:        req.Name,
		ABI:         canonical,
		StartHeight: *req.StartHeight,
		Enabled:     true,
	})
	if err != nil {
		return nil, false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create contract: %v", err))
	}

	if created {
		logger.InfoCtx(ctx, "Contract registered",
			zap.String("contractID", contract.ID),
			zap.Stringer("network", contract.Network),
			zap.String("address", contract.Address))
	}
	return dto.MapContractToDTO(contract), created, nil
}

func (e *executor) UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	update := store.ContractUpdate{
		Name:        req.Name,
		StartHeight: req.StartHeight,
		Enabled:     req.Enabled,
	}
	if req.ABI != nil {
		canonical, err := e.canonicalABI(req.ABI)
		if err != nil {
			return nil, err
		}
		update.ABI = canonical
	}

	contract, err := e.store.UpdateContract(ctx, id, update)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}
	return dto.MapContractToDTO(contract), nil
}

func (e *executor) DeleteContract(ctx context.Context, id string) (bool, error) {
	deleted, err := e.store.DeleteContract(ctx, id)
	if err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete contract: %v", err))
	}
	if deleted {
		logger.InfoCtx(ctx, "Contract deleted", zap.String("contractID", id))
	}
	return deleted, nil
}

func (e *executor) GetContractStatistics(ctx context.Context, id string) (*dto.ContractStatisticsResponse, error) {
	contract, err := e.store.GetContractByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}

	count, err := e.store.CountUniqueWallets(ctx, contract.Network, contract.Address)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count wallets: %v", err))
	}
	return &dto.ContractStatisticsResponse{UniqueWalletsCount: count}, nil
}

// canonicalABI checks raw parses as a contract ABI and returns its canonical JSON form
func (e *executor) canonicalABI(raw []byte) (datatypes.JSON, error) {
	if _, err := network.ParseABI(raw); err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid abi: %v", err))
	}

	canonical, err := e.jcs.Transform(raw)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid abi: %v", err))
	}
	return datatypes.JSON(canonical), nil
}

// parseABI parses the ABI stored on a contract
func parseABI(contract *schema.Contract) (*abi.ABI, error) {
	if len(contract.ABI) == 0 {
		return nil, apierrors.NewValidationError(fmt.Sprintf("contract %s has no abi", contract.ID))
	}
	parsed, err := network.ParseABI(contract.ABI)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to parse abi of contract %s", contract.ID), err.Error())
	}
	return &parsed, nil
}
