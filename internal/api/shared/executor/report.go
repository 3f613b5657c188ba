package executor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-event-scanner/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-event-scanner/internal/api/shared/errors"
	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// GetSyncProgressReport reads every network head concurrently. A network whose
// head cannot be read is still listed, with its error and no progress.
func (e *executor) GetSyncProgressReport(ctx context.Context) (*dto.SyncProgressReport, error) {
	summaries, err := e.store.GetNetworkSyncSummary(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get sync summary: %v", err))
	}

	items := make([]dto.NetworkSyncProgress, len(summaries))
	var g errgroup.Group
	for i, summary := range summaries {
		g.Go(func() error {
			item := dto.NetworkSyncProgress{
				Network:        summary.Network,
				Name:           summary.Network.Name(),
				ContractsCount: summary.ContractsCount,
				ListenersCount: summary.ListenersCount,
			}

			head, err := e.blockNumber(ctx, summary.Network)
			if err != nil {
				item.Error = err.Error()
				items[i] = item
				return nil
			}

			item.BlockNumber = &head
			if summary.MaxSyncHeight != nil {
				item.Progress.Max = dto.HeightPercent(*summary.MaxSyncHeight, head)
			}
			if summary.MinSyncHeight != nil {
				item.Progress.Min = dto.HeightPercent(*summary.MinSyncHeight, head)
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	return &dto.SyncProgressReport{Networks: items}, nil
}

func (e *executor) GetNetworkSyncProgress(ctx context.Context, network domain.NetworkID, limit, offset int) (*dto.ListenerSyncProgressListResponse, error) {
	head, err := e.blockNumber(ctx, network)
	if err != nil {
		return nil, apierrors.FromError(err, "Failed to get block number")
	}

	rows, err := e.store.ListListenerSyncProgress(ctx, network, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list sync progress: %v", err))
	}
	total, err := e.store.CountListenerSyncProgress(ctx, network)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to count sync progress: %v", err))
	}

	items := make([]dto.ListenerSyncProgress, len(rows))
	for i, row := range rows {
		items[i] = dto.ListenerSyncProgress{
			ListenerID:      row.ListenerID,
			ListenerName:    row.ListenerName,
			ContractID:      row.ContractID,
			ContractAddress: row.ContractAddress,
			ContractName:    row.ContractName,
			HistorySyncID:   row.HistorySyncID,
			StartHeight:     row.StartHeight,
			SyncHeight:      row.SyncHeight,
			Progress:        dto.HeightPercent(row.SyncHeight, head),
		}
	}

	return &dto.ListenerSyncProgressListResponse{
		Network:     network,
		BlockNumber: head,
		Listeners:   items,
		Offset:      nextOffset(offset, len(items), total),
		Total:       uint64(total), //nolint:gosec,G115
	}, nil
}

func (e *executor) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := e.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get task: %v", err))
	}
	if task == nil {
		return nil, nil
	}
	return dto.MapTaskToDTO(task), nil
}

func (e *executor) GetAddressInteractions(ctx context.Context, address string, network *domain.NetworkID) ([]dto.AddressInteraction, error) {
	rows, err := e.store.ListWalletInteractions(ctx, []string{address}, network)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list wallet interactions: %v", err))
	}
	return dto.MapInteractionsToDTO(rows), nil
}

func (e *executor) GetBulkAddressInteractions(ctx context.Context, addresses []string) (dto.BulkAddressInteractions, error) {
	rows, err := e.store.ListWalletInteractions(ctx, addresses, nil)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list wallet interactions: %v", err))
	}
	return dto.GroupInteractions(rows), nil
}

func (e *executor) blockNumber(ctx context.Context, id domain.NetworkID) (uint64, error) {
	net, err := e.networks.Network(ctx, id)
	if err != nil {
		return 0, err
	}
	return net.BlockNumber(ctx)
}
