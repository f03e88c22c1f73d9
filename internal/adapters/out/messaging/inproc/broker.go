// Package inproc is an in-process event channel. Every Channel attached to the
// same Broker behaves like its own consumer group: it receives every message
// published on the topics it subscribed to, in publish order.
package inproc

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/ports"
)

// ErrBrokerClosed is the publish failure cause after Broker.Close.
var ErrBrokerClosed = errors.New("in-process broker is closed")

type record struct {
	topic   string
	key     string
	payload []byte
}

// Broker fans published messages out to the attached channels.
type Broker struct {
	mu       sync.RWMutex
	channels []*Channel
	closed   bool
}

// NewBroker returns a broker with no channels.
func NewBroker() *Broker {
	return &Broker{}
}

// NewChannel attaches a new channel to the broker.
func (b *Broker) NewChannel(logger *slog.Logger) *Channel {
	c := &Channel{
		broker:   b,
		registry: messaging.NewRegistry(logger),
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.channels = append(b.channels, c)
	b.mu.Unlock()
	return c
}

// Close makes every later Publish fail.
func (b *Broker) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

func (b *Broker) publish(r record) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBrokerClosed
	}
	for _, c := range b.channels {
		c.enqueue(r)
	}
	return nil
}

// Channel implements ports.EventChannel on top of a Broker.
type Channel struct {
	broker   *Broker
	registry *messaging.Registry
	logger   *slog.Logger

	mu    sync.Mutex
	queue []record
	wake  chan struct{}
}

var _ ports.EventChannel = (*Channel)(nil)

// Publish hands the message to every attached channel. The broker ack is
// immediate once the message is queued.
func (c *Channel) Publish(ctx context.Context, topic string, message any) error {
	if err := ctx.Err(); err != nil {
		return messaging.NewPublishFailureError(topic, err)
	}

	key, payload, err := messaging.Encode(message)
	if err != nil {
		return messaging.NewPublishFailureError(topic, err)
	}

	if err = c.broker.publish(record{topic: topic, key: key, payload: payload}); err != nil {
		return messaging.NewPublishFailureError(topic, err)
	}
	return nil
}

// Subscribe registers the handler of topic. It fails once Start was called.
func (c *Channel) Subscribe(topic string, handler ports.EventHandler) error {
	return c.registry.Subscribe(topic, handler)
}

// Start drains the queue in order until ctx is cancelled.
func (c *Channel) Start(ctx context.Context) error {
	if _, err := c.registry.Seal(); err != nil {
		return err
	}

	for {
		r, ok := c.dequeue()
		if ok {
			c.registry.Dispatch(ctx, r.topic, r.payload)
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.wake:
		}
	}
}

// Close is a no-op. The consumer loop ends when its Start context is done.
func (c *Channel) Close() error {
	return nil
}

func (c *Channel) enqueue(r record) {
	if !c.registry.Handles(r.topic) {
		return
	}

	c.mu.Lock()
	c.queue = append(c.queue, r)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Channel) dequeue() (record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return record{}, false
	}
	r := c.queue[0]
	c.queue[0] = record{}
	c.queue = c.queue[1:]
	return r, true
}
