package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

const (
	defaultKeyPrefix               = "ff:scanner:limiter:"
	defaultLocalFallbackMultiplier = 0.5
	healthCheckInterval            = 10 * time.Second
)

// ErrClosed is returned by Wait after Close
var ErrClosed = errors.New("rate limiter is closed")

// Rate is the request budget of one key
type Rate struct {
	RequestsPerSecond int
	Burst             int
}

// Config holds the rate limiter settings
type Config struct {
	KeyPrefix string
	// LocalFallback keeps requests flowing through an in-process limiter when redis is unreachable
	LocalFallback           bool
	LocalFallbackMultiplier float64
	// Rates maps a key (a network name) to its budget; keys without a rate are not limited
	Rates map[string]Rate
}

// Limiter throttles requests per key across every process sharing the same redis
//
//go:generate mockgen -source=limiter.go -destination=../mocks/limiter.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Wait blocks until a request under key may proceed
	Wait(ctx context.Context, key string) error
	// Close stops the health monitor and closes the redis connection
	Close() error
}

type keyLimiter struct {
	name             string
	rate             Rate
	localLimiter     *rate.Limiter
	preFilterLimiter *rate.Limiter
}

type limiter struct {
	config         Config
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	keys           map[string]*keyLimiter
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	stopCh         chan struct{}
}

// New creates a rate limiter backed by redis with an optional local fallback
func New(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = defaultLocalFallbackMultiplier
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		if !cfg.LocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	keys := make(map[string]*keyLimiter)
	for name, r := range cfg.Rates {
		if r.RequestsPerSecond <= 0 {
			continue
		}
		if r.Burst <= 0 {
			r.Burst = r.RequestsPerSecond
		}

		localRate := max(float64(r.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)
		keys[name] = &keyLimiter{
			name:             name,
			rate:             r,
			localLimiter:     rate.NewLimiter(rate.Limit(localRate), r.Burst),
			preFilterLimiter: rate.NewLimiter(rate.Limit(r.RequestsPerSecond), r.Burst),
		}
	}

	l := &limiter{
		config:      cfg,
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		keys:        keys,
		stopCh:      make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth(l.clock.NewTicker(healthCheckInterval))

	logger.Info("Rate limiter initialized",
		zap.Int("keys", len(keys)),
		zap.Bool("redis_available", redisAvailable),
		zap.Bool("local_fallback", cfg.LocalFallback),
	)

	return l, nil
}

func (l *limiter) Wait(ctx context.Context, key string) error {
	if l.closed.Load() {
		return ErrClosed
	}

	kl, ok := l.keys[key]
	if !ok {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if l.redisAvailable.Load() {
			allowed, retryAfter, err := l.tryDistributed(ctx, kl)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}

				l.redisAvailable.Store(false)
				if !l.config.LocalFallback {
					return fmt.Errorf("redis rate limiter unavailable: %w", err)
				}
				logger.Warn("Redis rate limiter error, falling back to local",
					zap.String("key", kl.name),
					zap.Error(err),
				)
			case allowed:
				return nil
			case retryAfter > 0:
				// 50-150% of retryAfter spreads out competing processes
				jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-l.clock.After(jitter):
					continue
				}
			}
		}

		if !l.redisAvailable.Load() && l.config.LocalFallback {
			return kl.localLimiter.Wait(ctx)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(100 * time.Millisecond):
		}
	}
}

// tryDistributed asks redis for a token, returning how long to wait when none is left
func (l *limiter) tryDistributed(ctx context.Context, kl *keyLimiter) (bool, time.Duration, error) {
	// Pre-filter locally to keep redis pressure proportional to the real budget
	if err := kl.preFilterLimiter.Wait(ctx); err != nil {
		return false, 0, err
	}

	res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+kl.name, redis_rate.PerSecond(kl.rate.RequestsPerSecond))
	if err != nil {
		return false, 0, err
	}

	if res.Allowed == 0 {
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("key", kl.name),
			zap.Duration("retry_after", res.RetryAfter),
			zap.Int("remaining", res.Remaining),
		)
		return false, res.RetryAfter, nil
	}

	return true, 0, nil
}

// monitorRedisHealth pings redis on every tick and restores the distributed path once it answers
func (l *limiter) monitorRedisHealth(ticker *time.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		available := err == nil
		if !l.redisAvailable.Swap(available) && available {
			logger.Info("Redis connection restored")
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.stopCh)

		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}

// Unlimited is a Limiter that never waits
type Unlimited struct{}

func (Unlimited) Wait(ctx context.Context, _ string) error {
	return ctx.Err()
}

func (Unlimited) Close() error {
	return nil
}
