package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func (e *executor) ListHistorySyncs(ctx context.Context, listenerID string) (*dto.HistorySyncListResponse, error) {
	listener, err := e.store.GetEventListenerByID(ctx, listenerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get event listener: %v", err))
	}
	if listener == nil {
		return nil, nil
	}

	syncs, err := e.store.ListHistorySyncs(ctx, listener.ID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list history syncs: %v", err))
	}

	items := make([]dto.HistorySyncResponse, len(syncs))
	for i := range syncs {
		items[i] = dto.MapHistorySyncToDTO(&syncs[i])
	}
	return &dto.HistorySyncListResponse{
		HistorySyncs: items,
		Total:        uint64(len(items)),
	}, nil
}

// CreateHistorySync stores the backfill and hands it straight to a resolver
// task. When the push fails the next broker sweep picks the row up.
func (e *executor) CreateHistorySync(ctx context.Context, listenerID string, req dto.CreateHistorySyncRequest) (*dto.HistorySyncResponse, error) {
	listener, err := e.store.GetEventListenerByID(ctx, listenerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get event listener: %v", err))
	}
	if listener == nil {
		return nil, nil
	}

	contract, err := e.store.GetContractByID(ctx, listener.ContractID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}

	syncHeight := contract.StartHeight
	if req.SyncHeight != nil {
		syncHeight = *req.SyncHeight
	}
	if syncHeight == *req.EndHeight {
		return nil, apierrors.NewValidationError("sync_height and end_height must differ")
	}

	endHeight := *req.EndHeight
	sync := &schema.HistorySync{
		EventListenerID: listener.ID,
		SyncHeight:      syncHeight,
		EndHeight:       &endHeight,
		SaveEvents:      req.SaveEvents,
	}
	if err := e.store.CreateHistorySync(ctx, sync); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create history sync: %v", err))
	}

	task, err := e.queue.Push(ctx, domain.TaskHandlerHistorySyncResolver, domain.IDParams{ID: sync.ID})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to push resolver task, leaving the backfill to the broker",
			zap.Error(err),
			zap.String("historySyncID", sync.ID))
	} else {
		if err := e.store.UpdateHistorySync(ctx, sync.ID, store.HistorySyncUpdate{TaskID: &task.ID}); err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to store resolver task: %v", err))
		}
		sync.TaskID = &task.ID
	}

	logger.InfoCtx(ctx, "Backfill created",
		zap.String("listenerID", listener.ID),
		zap.String("historySyncID", sync.ID),
		zap.Uint64("syncHeight", syncHeight),
		zap.Uint64("endHeight", endHeight))

	resp := dto.MapHistorySyncToDTO(sync)
	return &resp, nil
}

func (e *executor) EnablePromptlySync(ctx context.Context, listenerID string) (*dto.PromptlySyncResponse, error) {
	listener, err := e.store.GetEventListenerByID(ctx, listenerID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get event listener: %v", err))
	}
	if listener == nil {
		return nil, nil
	}

	sync, err := e.store.CreatePromptlySync(ctx, listener.ID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create promptly sync: %v", err))
	}
	return dto.MapPromptlySyncToDTO(sync), nil
}

func (e *executor) DisablePromptlySync(ctx context.Context, listenerID string) (bool, error) {
	deleted, err := e.store.DeletePromptlySync(ctx, listenerID)
	if err != nil {
		return false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to delete promptly sync: %v", err))
	}
	return deleted, nil
}
