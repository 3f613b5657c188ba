package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/queue"
)

const defaultDeferredBatchSize = 100

// Config holds the intervals of the queue sweepers
type Config struct {
	ScheduleInterval  time.Duration
	DeferredInterval  time.Duration
	DeferredBatchSize int
	StaleInterval     time.Duration
}

// NewScheduleSweeper pushes a scheduleMinute30 task every interval
func NewScheduleSweeper(q queue.Queue, interval time.Duration, clock adapter.Clock) Sweeper {
	return NewPeriodicSweeper("schedule-sweeper", interval, func(ctx context.Context) error {
		task, err := q.Push(ctx, domain.TaskHandlerScheduleMinute30, nil)
		if err != nil {
			return fmt.Errorf("failed to push schedule task: %w", err)
		}
		logger.InfoCtx(ctx, "Pushed schedule task", zap.String("taskID", task.ID))
		return nil
	}, clock)
}

// NewDeferredSweeper dispatches due pending tasks in batches of batchSize,
// draining the backlog on every pass
func NewDeferredSweeper(q queue.Queue, interval time.Duration, batchSize int, clock adapter.Clock) Sweeper {
	if batchSize <= 0 {
		batchSize = defaultDeferredBatchSize
	}

	return NewPeriodicSweeper("deferred-sweeper", interval, func(ctx context.Context) error {
		total := 0
		for {
			dispatched, err := q.Deferred(ctx, batchSize)
			total += dispatched
			if err != nil {
				return fmt.Errorf("failed to dispatch deferred tasks: %w", err)
			}
			if dispatched < batchSize || ctx.Err() != nil {
				break
			}
		}

		if total > 0 {
			logger.InfoCtx(ctx, "Dispatched deferred tasks", zap.Int("count", total))
		}
		return nil
	}, clock)
}

// NewStaleSweeper puts processing tasks whose lease expired back to pending
func NewStaleSweeper(q queue.Queue, interval time.Duration, clock adapter.Clock) Sweeper {
	return NewPeriodicSweeper("stale-sweeper", interval, func(ctx context.Context) error {
		reset, err := q.ResetStale(ctx)
		if err != nil {
			return fmt.Errorf("failed to reset stale tasks: %w", err)
		}
		if reset > 0 {
			logger.WarnCtx(ctx, "Reset stale tasks",
				zap.Int64("count", reset),
				zap.Duration("lease", q.Lease()))
		}
		return nil
	}, clock)
}

// NewQueueSweepers returns the three sweepers the scheduler process runs
func NewQueueSweepers(cfg Config, q queue.Queue, clock adapter.Clock) []Sweeper {
	return []Sweeper{
		NewScheduleSweeper(q, cfg.ScheduleInterval, clock),
		NewDeferredSweeper(q, cfg.DeferredInterval, cfg.DeferredBatchSize, clock),
		NewStaleSweeper(q, cfg.StaleInterval, clock),
	}
}
