package messaging

import (
	"context"
	"errors"
	"time"
)

// ErrMalformedMessage marks a delivery that can never be handled and must not be redelivered
var ErrMalformedMessage = errors.New("malformed message")

// Delivery is one message handed to a Handler
type Delivery struct {
	Subject      string
	Data         []byte
	Headers      map[string]string
	NumDelivered uint64
	Timestamp    time.Time
}

// Handler processes a delivery. A nil error acknowledges it, an error wrapping
// ErrMalformedMessage terminates it and any other error asks for redelivery.
type Handler func(ctx context.Context, delivery *Delivery) error

// Subscription describes what a consumer binds to
type Subscription struct {
	// Durable names a consumer shared by every process using the same name;
	// empty binds an ephemeral consumer that only sees new messages
	Durable string
	// FilterSubject selects the subjects delivered, wildcards allowed
	FilterSubject string
	// Concurrency bounds the deliveries handled at the same time
	Concurrency int
}

// Consumer defines the interface for consuming from the message broker
//
//go:generate mockgen -source=consumer.go -destination=../mocks/consumer.go -package=mocks -mock_names=Consumer=MockConsumer
type Consumer interface {
	// Consume delivers messages to handler until ctx is done
	Consume(ctx context.Context, sub Subscription, handler Handler) error
	// Close closes the connection
	Close()
}
