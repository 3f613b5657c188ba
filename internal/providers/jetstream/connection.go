package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/config"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
)

const (
	// SubjectTasks is the subject prefix of dispatched tasks
	SubjectTasks = "tasks"
	// SubjectEvents is the subject prefix of matched event batches
	SubjectEvents = "events"

	// HeaderMsgID is the JetStream deduplication header
	HeaderMsgID = nats.MsgIdHdr
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWait        time.Duration
	MaxDeliver     int
	MaxAge         time.Duration
}

// StreamSubjects lists the subjects captured by the scanner stream
func StreamSubjects() []string {
	return []string{SubjectTasks + ".>", SubjectEvents + ".>"}
}

// EventsSubject returns the subject event batches of network are published to
func EventsSubject(network domain.NetworkID) string {
	return fmt.Sprintf("%s.%d", SubjectEvents, network)
}

// EventsFilter matches the event batches of every network
func EventsFilter() string {
	return SubjectEvents + ".*"
}

func connectionOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// connect dials NATS and makes sure the scanner stream exists
func connect(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (adapter.NatsConn, adapter.JetStream, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectionOptions(cfg)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		nc.Close()
		return nil, nil, err
	}

	return nc, js, nil
}

// ensureStream creates or updates the scanner stream, retrying while the server is starting up
func ensureStream(ctx context.Context, js adapter.JetStream, cfg Config) error {
	streamCfg := jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  StreamSubjects(),
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
		MaxAge:    cfg.MaxAge,
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		return js.CreateOrUpdateStream(ctx, streamCfg)
	}
	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Stream setup failed, retrying",
			zap.Error(err),
			zap.String("stream", cfg.StreamName),
			zap.Duration("next_retry_in", next),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}
	return nil
}

// FromConfig maps the service NATS settings onto a connection config
func FromConfig(c config.NATSConfig) Config {
	return Config{
		URL:            c.URL,
		StreamName:     c.StreamName,
		ConsumerName:   c.ConsumerName,
		MaxReconnects:  c.MaxReconnects,
		ReconnectWait:  c.ReconnectWait,
		ConnectionName: c.ConnectionName,
		AckWait:        c.AckWait,
		MaxDeliver:     c.MaxDeliver,
		MaxAge:         c.MaxAge,
	}
}
