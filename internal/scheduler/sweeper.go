package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

// Sweeper defines the interface for sweeper implementations.
// Sweepers are long-running background loops that keep the task queue moving.
type Sweeper interface {
	// Start begins the sweeper's main loop
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper, waiting for the current sweep to finish
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and identification
	Name() string
}

// SweepFunc runs one sweep
type SweepFunc func(ctx context.Context) error

// periodicSweeper runs a sweep right away and then once per interval
type periodicSweeper struct {
	name      string
	interval  time.Duration
	sweep     SweepFunc
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewPeriodicSweeper creates a sweeper calling sweep every interval
func NewPeriodicSweeper(name string, interval time.Duration, sweep SweepFunc, clock adapter.Clock) Sweeper {
	return &periodicSweeper{
		name:      name,
		interval:  interval,
		sweep:     sweep,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *periodicSweeper) Name() string {
	return s.name
}

func (s *periodicSweeper) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("sweeper %s: interval must be positive", s.name)
	}
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper %s already running", s.name)
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting sweeper",
		zap.String("sweeper", s.name),
		zap.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Sweeper stopping due to context cancellation", zap.String("sweeper", s.name))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Sweeper stop requested", zap.String("sweeper", s.name))
			return nil
		default:
		}

		started := s.clock.Now()
		if err := s.sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, fmt.Errorf("sweeper %s: %w", s.name, err),
				zap.Duration("duration", s.clock.Since(started)))
		}

		if !s.sleep(ctx, s.interval) {
			return nil
		}
	}
}

func (s *periodicSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Sweeper stopped gracefully", zap.String("sweeper", s.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sweeper stop interrupted by context timeout", zap.String("sweeper", s.name))
		return ctx.Err()
	}
}

// sleep returns false when interrupted by ctx or Stop
func (s *periodicSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

// Run starts every sweeper and blocks until all of them return
func Run(ctx context.Context, sweepers ...Sweeper) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sweepers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}
	return g.Wait()
}
