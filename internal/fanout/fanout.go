package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/philippseith/signalr"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
)

const (
	// TargetEvent is the client method invoked with every event batch
	TargetEvent = "event"

	defaultPath        = "/events"
	defaultConcurrency = 1
)

// Hub is the SignalR hub clients connect to. Clients only listen, the hub has no methods.
type Hub struct {
	signalr.Hub
}

func (h *Hub) OnConnected(connectionID string) {
	logger.Debug("Fan-out client connected", zap.String("connectionID", connectionID))
}

func (h *Hub) OnDisconnected(connectionID string) {
	logger.Debug("Fan-out client disconnected", zap.String("connectionID", connectionID))
}

// Config holds the fan-out settings
type Config struct {
	Path  string
	Debug bool
}

// Fanout rebroadcasts every events.<network> batch to the connected SignalR clients
type Fanout struct {
	config   Config
	consumer messaging.Consumer
	server   adapter.SignalRServer
	json     adapter.JSON
}

// New creates the SignalR server and the fan-out around it
func New(ctx context.Context, cfg Config, consumer messaging.Consumer, signalR adapter.SignalR, jsonAdapter adapter.JSON) (*Fanout, error) {
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}

	server, err := signalR.NewServer(ctx, &Hub{}, logger.NewKeyvalLogger(nil), cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create SignalR server: %w", err)
	}

	return &Fanout{
		config:   cfg,
		consumer: consumer,
		server:   server,
		json:     jsonAdapter,
	}, nil
}

// Mount registers the hub endpoints on mux
func (f *Fanout) Mount(mux *http.ServeMux) {
	f.server.MapHTTP(mux, f.config.Path)
}

// Run binds an ephemeral consumer on every events subject and broadcasts
// what it receives until ctx is done. Batches published while no fan-out
// process was running are not replayed.
func (f *Fanout) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event fan-out", zap.String("path", f.config.Path))

	return f.consumer.Consume(ctx, messaging.Subscription{
		FilterSubject: jetstream.EventsFilter(),
		Concurrency:   defaultConcurrency,
	}, f.handle)
}

func (f *Fanout) handle(ctx context.Context, delivery *messaging.Delivery) error {
	var message domain.EventsMessage
	if err := f.json.Unmarshal(delivery.Data, &message); err != nil {
		logger.WarnCtx(ctx, "Dropping undecodable event batch",
			zap.String("subject", delivery.Subject),
			zap.Error(err))
		return fmt.Errorf("%w: %v", messaging.ErrMalformedMessage, err)
	}

	f.server.Broadcast(TargetEvent, json.RawMessage(delivery.Data))

	logger.DebugCtx(ctx, "Broadcast event batch",
		zap.String("subject", delivery.Subject),
		zap.String("listenerID", message.Listener.ID),
		zap.Int("count", len(message.Events)))
	return nil
}
