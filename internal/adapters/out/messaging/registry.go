package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"fooddelivery/internal/core/ports"
)

// Registry maps each topic to its single handler and dispatches payloads to it.
// Subscriptions are frozen by Seal, which the adapters call when their
// consumer loop starts.
type Registry struct {
	mu       sync.Mutex
	handlers map[string]ports.EventHandler
	sealed   bool

	// dispatchMu serialises handler calls across adapter goroutines.
	dispatchMu sync.Mutex
	logger     *slog.Logger
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]ports.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers handler for topic.
func (r *Registry) Subscribe(topic string, handler ports.EventHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: %s", ErrLateSubscription, topic)
	}
	if _, ok := r.handlers[topic]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSubscription, topic)
	}

	r.handlers[topic] = handler
	return nil
}

// Seal freezes the subscriptions and returns the subscribed topics, sorted.
// A second Seal returns ErrAlreadyStarted.
func (r *Registry) Seal() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, ErrAlreadyStarted
	}
	r.sealed = true

	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics, nil
}

// Handles reports whether topic has a handler.
func (r *Registry) Handles(topic string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.handlers[topic]
	return ok
}

// Dispatch runs the handler of topic on payload. Handler errors and panics
// are logged and swallowed so that one bad message never stops the loop.
// It reports whether the handler completed without error.
func (r *Registry) Dispatch(ctx context.Context, topic string, payload []byte) (ok bool) {
	r.mu.Lock()
	handler, found := r.handlers[topic]
	r.mu.Unlock()

	if !found {
		r.logger.WarnContext(ctx, "no handler for topic", "topic", topic)
		return false
	}

	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "event handler panicked", "topic", topic, "panic", rec)
			ok = false
		}
	}()

	if err := handler(ctx, payload); err != nil {
		r.logger.ErrorContext(ctx, "event handler failed", "topic", topic, "error", err)
		return false
	}
	return true
}
