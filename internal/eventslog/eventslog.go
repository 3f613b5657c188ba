package eventslog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
)

// EventsLog writes one line per published event batch
type EventsLog struct {
	consumer messaging.Consumer
	json     adapter.JSON
}

func New(consumer messaging.Consumer, jsonAdapter adapter.JSON) *EventsLog {
	return &EventsLog{consumer: consumer, json: jsonAdapter}
}

// Run follows new batches on every network until ctx is done
func (l *EventsLog) Run(ctx context.Context) error {
	return l.consumer.Consume(ctx, messaging.Subscription{
		FilterSubject: jetstream.EventsFilter(),
		Concurrency:   1,
	}, l.handle)
}

func (l *EventsLog) handle(ctx context.Context, delivery *messaging.Delivery) error {
	var message domain.EventsMessage
	if err := l.json.Unmarshal(delivery.Data, &message); err != nil {
		return fmt.Errorf("%w: %v", messaging.ErrMalformedMessage, err)
	}

	logger.InfoCtx(ctx, Line(message),
		zap.String("subject", delivery.Subject),
		zap.String("listenerID", message.Listener.ID))
	return nil
}

// Line renders a batch as network:{from-to} count
func Line(message domain.EventsMessage) string {
	return fmt.Sprintf("%d:{%d-%d} %d", message.Contract.Network, message.From, message.To, len(message.Events))
}
