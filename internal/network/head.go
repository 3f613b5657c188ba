package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

// headFetcher reads the current block height from the node
type headFetcher func(ctx context.Context) (uint64, error)

// headCache serves the latest block height for TTL before asking the node
// again. When the node fails, a height younger than the stale window is
// still served.
type headCache struct {
	fetch       headFetcher
	ttl         time.Duration
	staleWindow time.Duration
	clock       adapter.Clock

	mu        sync.RWMutex
	height    uint64
	fetchedAt time.Time
	hasHeight bool
}

func newHeadCache(fetch headFetcher, ttl, staleWindow time.Duration, clock adapter.Clock) *headCache {
	return &headCache{
		fetch:       fetch,
		ttl:         ttl,
		staleWindow: staleWindow,
		clock:       clock,
	}
}

func (h *headCache) get(ctx context.Context) (uint64, error) {
	h.mu.RLock()
	height, fetchedAt, ok := h.height, h.fetchedAt, h.hasHeight
	h.mu.RUnlock()

	now := h.clock.Now()
	age := now.Sub(fetchedAt)

	if ok && age < h.ttl {
		return height, nil
	}

	fresh, err := h.fetch(ctx)
	if err != nil {
		if ok && age < h.staleWindow {
			logger.WarnCtx(ctx, "Serving stale block height",
				zap.Uint64("height", height),
				zap.Duration("age", age),
				zap.Error(err))
			return height, nil
		}
		return 0, fmt.Errorf("failed to fetch block height: %w", err)
	}

	h.mu.Lock()
	h.height = fresh
	h.fetchedAt = now
	h.hasHeight = true
	h.mu.Unlock()

	return fresh, nil
}
