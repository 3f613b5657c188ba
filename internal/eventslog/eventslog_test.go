package eventslog_test

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/eventslog"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
	"github.com/feral-file/ff-event-scanner/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestLine(t *testing.T) {
	message := domain.EventsMessage{
		Contract: domain.EventsContract{Network: domain.NetworkPolygon},
		From:     100,
		To:       105,
		Events:   make([]domain.NormalizedEvent, 3),
	}
	assert.Equal(t, "137:{100-105} 3", eventslog.Line(message))
}

func TestEventsLog_Run(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		malformed bool
	}{
		{name: "batch", data: `{"contract":{"network":1},"from":1,"to":2,"events":[{}]}`},
		{name: "garbage", data: `not json`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var handled error
			consumer := mocks.NewMockConsumer(ctrl)
			consumer.EXPECT().
				Consume(gomock.Any(), messaging.Subscription{FilterSubject: "events.*", Concurrency: 1}, gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ messaging.Subscription, handler messaging.Handler) error {
					handled = handler(ctx, &messaging.Delivery{Subject: "events.1", Data: []byte(tt.data)})
					return nil
				})

			require.NoError(t, eventslog.New(consumer, adapter.NewJSON()).Run(context.Background()))
			if tt.malformed {
				assert.ErrorIs(t, handled, messaging.ErrMalformedMessage)
			} else {
				assert.NoError(t, handled)
			}
		})
	}
}
