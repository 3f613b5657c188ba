package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
)

const defaultSyncHeightTTL = time.Hour

// SyncHeightCache stores the next block the live poll loop scans for each listener
//
//go:generate mockgen -source=sync_height.go -destination=../mocks/sync_height.go -package=mocks -mock_names=SyncHeightCache=MockSyncHeightCache
type SyncHeightCache interface {
	// Get returns the cached height, ok is false when none is stored
	Get(ctx context.Context, listenerID string) (height uint64, ok bool, err error)
	// Set stores height and refreshes the expiry
	Set(ctx context.Context, listenerID string, height uint64) error
}

type syncHeightCache struct {
	client adapter.RedisClient
	ttl    time.Duration
}

// NewSyncHeightCache creates a redis backed cache. A non-positive ttl falls back to one hour.
func NewSyncHeightCache(client adapter.RedisClient, ttl time.Duration) SyncHeightCache {
	if ttl <= 0 {
		ttl = defaultSyncHeightTTL
	}
	return &syncHeightCache{client: client, ttl: ttl}
}

// SyncHeightKey returns the redis key of a listener's live cursor
func SyncHeightKey(listenerID string) string {
	return fmt.Sprintf(domain.SyncHeightCacheKeyFormat, listenerID)
}

func (c *syncHeightCache) Get(ctx context.Context, listenerID string) (uint64, bool, error) {
	raw, err := c.client.Get(ctx, SyncHeightKey(listenerID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read sync height of listener %s: %w", listenerID, err)
	}

	height, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		// a corrupt value is treated as missing so the poller re-seeds it
		return 0, false, nil
	}

	return height, true, nil
}

func (c *syncHeightCache) Set(ctx context.Context, listenerID string, height uint64) error {
	value := strconv.FormatUint(height, 10)
	if err := c.client.SetEx(ctx, SyncHeightKey(listenerID), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write sync height of listener %s: %w", listenerID, err)
	}
	return nil
}
