package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
)

type publisher struct {
	nc adapter.NatsConn
	js adapter.JetStream
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
	nc, js, err := connect(ctx, cfg, natsJS)
	if err != nil {
		return nil, err
	}

	return &publisher{nc: nc, js: js}, nil
}

// Publish publishes data to NATS JetStream
func (p *publisher) Publish(ctx context.Context, subject string, data []byte, headers map[string]string) error {
	logger.DebugCtx(ctx, "Publishing NATS message", zap.String("subject", subject), zap.Int("size", len(data)))

	msg := nats.NewMsg(subject)
	msg.Data = data
	for k, v := range headers {
		msg.Header.Set(k, v)
	}

	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
