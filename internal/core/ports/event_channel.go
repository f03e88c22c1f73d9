package ports

import "context"

// EventHandler consumes one raw JSON payload from a topic.
type EventHandler func(ctx context.Context, payload []byte) error

// EventPublisher sends messages to a named topic.
type EventPublisher interface {
	// Publish JSON-encodes message and returns after the broker acknowledged it.
	// Failures are returned as *messaging.PublishFailureError; there is no retry.
	Publish(ctx context.Context, topic string, message any) error
}

// EventSubscriber delivers topic messages to registered handlers.
type EventSubscriber interface {
	// Subscribe registers the single handler of topic. It must be called
	// before Start.
	Subscribe(topic string, handler EventHandler) error

	// Start runs the consumer loop until ctx is cancelled. Handlers are called
	// one at a time in broker order; their errors are logged, not returned.
	Start(ctx context.Context) error
}

// EventChannel is the full broker abstraction a service is wired with.
type EventChannel interface {
	EventPublisher
	EventSubscriber

	// Close releases broker connections.
	Close() error
}
