package historysync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

const defaultBrokerConcurrency = 10

// reconcileAction is what the broker did for one history sync
type reconcileAction int

const (
	actionNone reconcileAction = iota
	actionRestarted
	actionPushed
)

// Broker makes sure a resolver task drives every unfinished history sync
type Broker struct {
	store       store.Store
	queue       queue.Queue
	clock       adapter.Clock
	concurrency int
}

// NewBroker creates the interactionHistorySyncBroker handler.
// concurrency bounds the rows reconciled at the same time.
func NewBroker(st store.Store, q queue.Queue, clock adapter.Clock, concurrency int) *Broker {
	if concurrency <= 0 {
		concurrency = defaultBrokerConcurrency
	}
	return &Broker{
		store:       st,
		queue:       q,
		clock:       clock,
		concurrency: concurrency,
	}
}

func (b *Broker) Handle(ctx context.Context, o queue.Outcome) (queue.Outcome, error) {
	rows, err := b.store.GetUnfinishedHistorySyncs(ctx)
	if err != nil {
		return o, err
	}

	var (
		restarted atomic.Int64
		pushed    atomic.Int64
		mu        sync.Mutex
		errs      []error
	)

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i := range rows {
		row := &rows[i]
		g.Go(func() error {
			action, err := b.reconcile(ctx, row)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("history sync %s: %w", row.ID, err))
				mu.Unlock()
				return nil
			}
			switch action {
			case actionRestarted:
				restarted.Add(1)
			case actionPushed:
				pushed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	info := fmt.Sprintf("%d unfinished, %d restarted, %d pushed", len(rows), restarted.Load(), pushed.Load())
	logger.InfoCtx(ctx, "History syncs reconciled",
		zap.Int("unfinished", len(rows)),
		zap.Int64("restarted", restarted.Load()),
		zap.Int64("pushed", pushed.Load()),
		zap.Int("failed", len(errs)))

	if err := errors.Join(errs...); err != nil {
		return o.WithInfo(info), err
	}
	return o.WithInfo(info).AsDone(), nil
}

// reconcile restarts the row's task when it stalled or failed, and pushes a
// new one when the row has none or its last task completed
func (b *Broker) reconcile(ctx context.Context, row *schema.HistorySync) (reconcileAction, error) {
	if row.TaskID == nil {
		return b.push(ctx, row)
	}

	task, err := b.store.GetTaskByID(ctx, *row.TaskID)
	if err != nil {
		return actionNone, err
	}
	if task == nil {
		return b.push(ctx, row)
	}

	switch task.Status {
	case domain.TaskStatusPending:
		return actionNone, nil
	case domain.TaskStatusProcessing:
		if b.clock.Since(task.UpdatedAt) <= b.queue.Lease() {
			return actionNone, nil
		}
		logger.WarnCtx(ctx, "Restarting stalled resolver task",
			zap.String("historySyncID", row.ID),
			zap.String("taskID", task.ID),
			zap.Time("updatedAt", task.UpdatedAt))
		return b.restart(ctx, task)
	case domain.TaskStatusError:
		return b.restart(ctx, task)
	default:
		return b.push(ctx, row)
	}
}

func (b *Broker) restart(ctx context.Context, task *schema.Task) (reconcileAction, error) {
	if _, err := b.queue.ResetAndRestart(ctx, task); err != nil {
		return actionNone, fmt.Errorf("failed to restart task %s: %w", task.ID, err)
	}
	return actionRestarted, nil
}

func (b *Broker) push(ctx context.Context, row *schema.HistorySync) (reconcileAction, error) {
	task, err := b.queue.Push(ctx, domain.TaskHandlerHistorySyncResolver, domain.IDParams{ID: row.ID})
	if err != nil {
		return actionNone, fmt.Errorf("failed to push resolver task: %w", err)
	}

	if err := b.store.UpdateHistorySync(ctx, row.ID, store.HistorySyncUpdate{TaskID: &task.ID}); err != nil {
		return actionNone, fmt.Errorf("failed to store resolver task %s: %w", task.ID, err)
	}
	return actionPushed, nil
}
