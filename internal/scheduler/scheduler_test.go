package scheduler_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/scheduler"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testSchedulerMocks struct {
	ctrl  *gomock.Controller
	queue *mocks.MockQueue
	clock *mocks.MockClock
}

func setupTestScheduler(t *testing.T) *testSchedulerMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testSchedulerMocks{
		ctrl:  ctrl,
		queue: mocks.NewMockQueue(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Millisecond).AnyTimes()
	return tm
}

// ticks makes clock.After fire n times and then never again
func (tm *testSchedulerMocks) ticks(n int) {
	for i := 0; i < n; i++ {
		fired := make(chan time.Time, 1)
		fired <- time.Time{}
		var ch <-chan time.Time = fired
		tm.clock.EXPECT().After(gomock.Any()).Return(ch)
	}
	var never <-chan time.Time = make(chan time.Time)
	tm.clock.EXPECT().After(gomock.Any()).Return(never).AnyTimes()
}

func runUntilDone(ctx context.Context, t *testing.T, s scheduler.Sweeper) {
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestScheduleSweeper_PushesEveryTick(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pushed atomic.Int32
	tm.queue.EXPECT().
		Push(gomock.Any(), domain.TaskHandlerScheduleMinute30, nil).
		DoAndReturn(func(context.Context, domain.TaskHandler, interface{}, ...queue.PushOption) (*schema.Task, error) {
			if pushed.Add(1) == 3 {
				cancel()
			}
			return &schema.Task{ID: "task-1"}, nil
		}).
		Times(3)

	s := scheduler.NewScheduleSweeper(tm.queue, 30*time.Minute, tm.clock)
	assert.Equal(t, "schedule-sweeper", s.Name())
	runUntilDone(ctx, t, s)
	assert.Equal(t, int32(3), pushed.Load())
}

func TestScheduleSweeper_KeepsRunningAfterFailure(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		tm.queue.EXPECT().
			Push(gomock.Any(), domain.TaskHandlerScheduleMinute30, nil).
			Return(nil, errors.New("nats down")),
		tm.queue.EXPECT().
			Push(gomock.Any(), domain.TaskHandlerScheduleMinute30, nil).
			DoAndReturn(func(context.Context, domain.TaskHandler, interface{}, ...queue.PushOption) (*schema.Task, error) {
				cancel()
				return &schema.Task{ID: "task-2"}, nil
			}),
	)

	runUntilDone(ctx, t, scheduler.NewScheduleSweeper(tm.queue, time.Minute, tm.clock))
}

func TestDeferredSweeper_DrainsFullBatches(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		tm.queue.EXPECT().Deferred(gomock.Any(), 2).Return(2, nil),
		tm.queue.EXPECT().Deferred(gomock.Any(), 2).Return(2, nil),
		tm.queue.EXPECT().Deferred(gomock.Any(), 2).DoAndReturn(func(context.Context, int) (int, error) {
			cancel()
			return 1, nil
		}),
	)

	runUntilDone(ctx, t, scheduler.NewDeferredSweeper(tm.queue, 10*time.Second, 2, tm.clock))
}

func TestDeferredSweeper_StopsPassOnError(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		tm.queue.EXPECT().Deferred(gomock.Any(), 100).Return(100, errors.New("publish failed")),
		tm.queue.EXPECT().Deferred(gomock.Any(), 100).DoAndReturn(func(context.Context, int) (int, error) {
			cancel()
			return 0, nil
		}),
	)

	// a zero batch size falls back to the default
	runUntilDone(ctx, t, scheduler.NewDeferredSweeper(tm.queue, 10*time.Second, 0, tm.clock))
}

func TestStaleSweeper_ResetsExpiredLeases(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.queue.EXPECT().Lease().Return(domain.DefaultTaskLease).AnyTimes()
	tm.queue.EXPECT().ResetStale(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		cancel()
		return 3, nil
	})

	runUntilDone(ctx, t, scheduler.NewStaleSweeper(tm.queue, time.Minute, tm.clock))
}

func TestPeriodicSweeper_Stop(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(0)

	swept := make(chan struct{})
	s := scheduler.NewPeriodicSweeper("test-sweeper", time.Minute, func(context.Context) error {
		close(swept)
		return nil
	}, tm.clock)

	done := make(chan error, 1)
	go func() { done <- s.Start(context.Background()) }()
	<-swept

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-done)

	// stopping twice is a no-op
	require.NoError(t, s.Stop(ctx))
}

func TestPeriodicSweeper_RejectsInvalidInterval(t *testing.T) {
	tm := setupTestScheduler(t)

	s := scheduler.NewPeriodicSweeper("test-sweeper", 0, func(context.Context) error { return nil }, tm.clock)
	assert.Error(t, s.Start(context.Background()))
}

func TestPeriodicSweeper_RejectsSecondStart(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(0)

	swept := make(chan struct{})
	s := scheduler.NewPeriodicSweeper("test-sweeper", time.Minute, func(context.Context) error {
		close(swept)
		return nil
	}, tm.clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	<-swept

	assert.Error(t, s.Start(ctx))
	cancel()
	require.NoError(t, <-done)
}

func TestRun(t *testing.T) {
	tm := setupTestScheduler(t)
	tm.ticks(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var swept atomic.Int32
	sweep := func(context.Context) error {
		if swept.Add(1) == 3 {
			cancel()
		}
		return nil
	}

	err := scheduler.Run(ctx,
		scheduler.NewPeriodicSweeper("a", time.Minute, sweep, tm.clock),
		scheduler.NewPeriodicSweeper("b", time.Minute, sweep, tm.clock),
		scheduler.NewPeriodicSweeper("c", time.Minute, sweep, tm.clock),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(3), swept.Load())
}

func TestNewQueueSweepers(t *testing.T) {
	tm := setupTestScheduler(t)

	sweepers := scheduler.NewQueueSweepers(scheduler.Config{
		ScheduleInterval:  30 * time.Minute,
		DeferredInterval:  10 * time.Second,
		DeferredBatchSize: 50,
		StaleInterval:     time.Minute,
	}, tm.queue, tm.clock)

	names := make([]string, 0, len(sweepers))
	for _, s := range sweepers {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"schedule-sweeper", "deferred-sweeper", "stale-sweeper"}, names)
}
