package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func (e *executor) ListEventListeners(ctx context.Context, contractID string, limit, offset int) (*dto.EventListenerListResponse, error) {
	contract, err := e.store.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}

	rows, err := e.store.ListEventListeners(ctx, contractID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list event listeners: %v", err))
	}
	total, err := e.store.CountEventListeners(ctx, contractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count event listeners: %v", err))
	}

	head := e.head(ctx, contract.Network)
	items := make([]dto.EventListenerResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.MapListenerWithSyncToDTO(row, contract.StartHeight, head)
	}

	return &dto.EventListenerListResponse{
		EventListeners: items,
		Offset:         nextOffset(offset, len(items), total),
		Total:          uint64(total), //nolint:gosec,G115
	}, nil
}

func (e *executor) CountEventListeners(ctx context.Context, contractID string) (*dto.CountResponse, error) {
	contract, err := e.store.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}

	count, err := e.store.CountEventListeners(ctx, contractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count event listeners: %v", err))
	}
	return &dto.CountResponse{Count: count}, nil
}

func (e *executor) GetEventListener(ctx context.Context, contractID, listenerID string) (*dto.EventListenerResponse, error) {
	listener, err := e.contractListener(ctx, contractID, listenerID)
	if err != nil || listener == nil {
		return nil, err
	}

	resp := dto.MapEventListenerToDTO(listener)
	promptly, err := e.store.GetPromptlySync(ctx, listener.ID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get promptly sync: %v", err))
	}
	enabled := promptly != nil
	resp.Promptly = &enabled
	return resp, nil
}

func (e *executor) CreateEventListener(ctx context.Context, contractID string, req dto.EventListenerRequest) (*dto.EventListenerResponse, bool, error) {
	contract, err := e.store.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, false, nil
	}
	if err := checkEvent(contract, req.Name); err != nil {
		return nil, false, err
	}

	listener, created, err := e.store.CreateEventListener(ctx, &schema.EventListener{
		ContractID: contract.ID,
		Name:       req.Name,
	})
	if err != nil {
		return nil, false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create event listener: %v", err))
	}
	if !created {
		return dto.MapEventListenerToDTO(listener), false, nil
	}

	task, err := e.queue.Push(ctx, domain.TaskHandlerEventListenerCreated, domain.IDParams{ID: listener.ID})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to push listener created task: %w", err), zap.String("listenerID", listener.ID))
		return nil, false, apierrors.NewServiceError("Failed to provision history sync", err.Error())
	}

	logger.InfoCtx(ctx, "Event listener created",
		zap.String("contractID", contract.ID),
		zap.String("listenerID", listener.ID),
		zap.String("event", listener.Name),
		zap.String("taskID", task.ID))

	return dto.MapEventListenerToDTO(listener), true, nil
}

func (e *executor) UpdateEventListener(ctx context.Context, contractID, listenerID string, req dto.EventListenerRequest) (*dto.EventListenerResponse, error) {
	listener, err := e.contractListener(ctx, contractID, listenerID)
	if err != nil || listener == nil {
		return nil, err
	}

	contract, err := e.store.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}
	if err := checkEvent(contract, req.Name); err != nil {
		return nil, err
	}

	updated, err := e.store.UpdateEventListener(ctx, listener.ID, req.Name)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update event listener: %v", err))
	}
	if updated == nil {
		return nil, nil
	}
	return dto.MapEventListenerToDTO(updated), nil
}

func (e *executor) DeleteEventListener(ctx context.Context, contractID, listenerID string) (bool, error) {
	listener, err := e.contractListener(ctx, contractID, listenerID)
	if err != nil || listener == nil {
		return false, err
	}

	deleted, err := e.store.DeleteEventListener(ctx, listener.ID)
	if err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete event listener: %v", err))
	}
	if deleted {
		logger.InfoCtx(ctx, "Event listener deleted", zap.String("listenerID", listener.ID))
	}
	return deleted, nil
}

// contractListener returns the listener only when it belongs to contractID
func (e *executor) contractListener(ctx context.Context, contractID, listenerID string) (*schema.EventListener, error) {
	listener, err := e.store.GetEventListenerByID(ctx, listenerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get event listener: %v", err))
	}
	if listener == nil || listener.ContractID != contractID {
		return nil, nil
	}
	return listener, nil
}

// checkEvent makes sure the contract ABI declares the event
func checkEvent(contract *schema.Contract, name string) error {
	parsed, err := parseABI(contract)
	if err != nil {
		return err
	}
	if _, ok := parsed.Events[name]; !ok {
		return apierrors.NewValidationError(fmt.Sprintf("%v: %s", domain.ErrEventNotInInterface, name))
	}
	return nil
}

// head returns the current block of network, 0 when it cannot be read
func (e *executor) head(ctx context.Context, id domain.NetworkID) uint64 {
	head, err := e.blockNumber(ctx, id)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to get block number", zap.Error(err), zap.Stringer("network", id))
		return 0
	}
	return head
}
