package messaging

import (
	"context"
)

// Publisher defines the interface for publishing to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish sends data to subject with optional headers.
	// A Nats-Msg-Id header lets the broker drop duplicates.
	Publish(ctx context.Context, subject string, data []byte, headers map[string]string) error
	// Close closes the connection
	Close()
}
