package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
)

const ephemeralInactiveThreshold = 5 * time.Minute

type consumer struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	clock  adapter.Clock
	config Config
}

// NewConsumer creates a new NATS JetStream consumer
func NewConsumer(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, clock adapter.Clock) (messaging.Consumer, error) {
	nc, js, err := connect(ctx, cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &consumer{
		nc:     nc,
		js:     js,
		clock:  clock,
		config: cfg,
	}, nil
}

// Consume binds a consumer to the stream and hands deliveries to handler until ctx is done
func (c *consumer) Consume(ctx context.Context, sub messaging.Subscription, handler messaging.Handler) error {
	logger.InfoCtx(ctx, "Starting consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("durable", sub.Durable),
		zap.String("filter", sub.FilterSubject))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       sub.Durable,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: sub.FilterSubject,
	}
	if sub.Durable == "" {
		consumerConfig.DeliverPolicy = jetstream.DeliverNewPolicy
		consumerConfig.InactiveThreshold = ephemeralInactiveThreshold
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := cons.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	concurrency := sub.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	pool := pond.NewPool(concurrency, pond.WithQueueSize(concurrency))
	defer pool.StopAndWait()

	cc, err := cons.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			c.handleMessage(ctx, msg, handler)
		})
	}, jetstream.PullMaxMessages(concurrency))
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer cc.Stop()

	logger.InfoCtx(ctx, "Started consuming messages", zap.Int("concurrency", concurrency))

	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Shutting down consumer", zap.String("filter", sub.FilterSubject))
		return ctx.Err()
	case <-cc.Closed():
		return errors.New("consumer closed by server")
	}
}

// handleMessage runs handler on one message and settles it with the broker
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.Handler) {
	delivery := &messaging.Delivery{
		Subject: msg.Subject(),
		Data:    msg.Data(),
		Headers: make(map[string]string),
	}
	for k, v := range msg.Headers() {
		if len(v) > 0 {
			delivery.Headers[k] = v[0]
		}
	}
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivery.NumDelivered = metadata.NumDelivered
		delivery.Timestamp = metadata.Timestamp
	}

	stop := c.keepAlive(ctx, msg)
	err := handler(ctx, delivery)
	stop()

	switch {
	case err == nil:
		if err := msg.Ack(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
		}
	case errors.Is(err, messaging.ErrMalformedMessage):
		logger.ErrorCtx(ctx, err, zap.String("message", "Terminating malformed message"), zap.String("subject", delivery.Subject))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
	default:
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to handle message"),
			zap.String("subject", delivery.Subject),
			zap.Uint64("deliveryCount", delivery.NumDelivered))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
	}
}

// keepAlive extends the ack deadline while a handler runs longer than the ack wait
func (c *consumer) keepAlive(ctx context.Context, msg adapter.Message) func() {
	if c.config.AckWait <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	ticker := c.clock.NewTicker(c.config.AckWait / 2)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := msg.InProgress(); err != nil {
					logger.WarnCtx(ctx, "Failed to extend message ack deadline", zap.Error(err))
				}
			}
		}
	}()

	return func() { close(done) }
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
