package inproc_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/adapters/out/messaging/inproc"
	"fooddelivery/internal/core/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type collector struct {
	mu       sync.Mutex
	payloads []string
}

func (c *collector) handle(_ context.Context, p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, string(p))
	return nil
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.payloads...)
}

func start(t *testing.T, ch *inproc.Channel) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, ch.Start(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestChannel_FanOut(t *testing.T) {
	broker := inproc.NewBroker()
	publisher := broker.NewChannel(discardLogger())
	kitchen := broker.NewChannel(discardLogger())
	dispatch := broker.NewChannel(discardLogger())

	var kitchenSeen, dispatchSeen collector
	require.NoError(t, kitchen.Subscribe(events.TopicOrderStatus, kitchenSeen.handle))
	require.NoError(t, dispatch.Subscribe(events.TopicOrderStatus, dispatchSeen.handle))
	start(t, kitchen)
	start(t, dispatch)

	for _, s := range []string{"ACCEPTED", "PREPARING", "READY"} {
		require.NoError(t, publisher.Publish(t.Context(), events.TopicOrderStatus,
			events.OrderStatusEvent{OrderID: "o-1", Status: s}))
	}

	for _, c := range []*collector{&kitchenSeen, &dispatchSeen} {
		require.Eventually(t, func() bool { return len(c.snapshot()) == 3 }, time.Second, 5*time.Millisecond)
		got := c.snapshot()
		assert.Contains(t, got[0], "ACCEPTED")
		assert.Contains(t, got[1], "PREPARING")
		assert.Contains(t, got[2], "READY")
	}
}

func TestChannel_QueueBeforeStart(t *testing.T) {
	broker := inproc.NewBroker()
	ch := broker.NewChannel(discardLogger())
	var seen collector
	require.NoError(t, ch.Subscribe(events.TopicOrders, seen.handle))

	require.NoError(t, ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "o-1"}))
	start(t, ch)

	require.Eventually(t, func() bool { return len(seen.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestChannel_IgnoresUnsubscribedTopics(t *testing.T) {
	broker := inproc.NewBroker()
	ch := broker.NewChannel(discardLogger())
	var seen collector
	require.NoError(t, ch.Subscribe(events.TopicOrders, seen.handle))
	start(t, ch)

	require.NoError(t, ch.Publish(t.Context(), events.TopicDeliveryLocation, map[string]string{"deliveryId": "d"}))
	require.NoError(t, ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "o"}))

	require.Eventually(t, func() bool { return len(seen.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, seen.snapshot()[0], `"id":"o"`)
}

func TestChannel_HandlerFailureDoesNotStopLoop(t *testing.T) {
	broker := inproc.NewBroker()
	ch := broker.NewChannel(discardLogger())
	var seen collector
	calls := 0
	require.NoError(t, ch.Subscribe(events.TopicOrders, func(ctx context.Context, p []byte) error {
		calls++
		if calls == 1 {
			panic("bad message")
		}
		return seen.handle(ctx, p)
	}))
	start(t, ch)

	require.NoError(t, ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "1"}))
	require.NoError(t, ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "2"}))

	require.Eventually(t, func() bool { return len(seen.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, seen.snapshot()[0], `"id":"2"`)
}

func TestChannel_LateSubscription(t *testing.T) {
	ch := inproc.NewBroker().NewChannel(discardLogger())
	require.NoError(t, ch.Subscribe(events.TopicOrders, func(context.Context, []byte) error { return nil }))
	start(t, ch)

	attempt := 0
	require.Eventually(t, func() bool {
		attempt++
		err := ch.Subscribe(fmt.Sprintf("probe-%d", attempt), func(context.Context, []byte) error { return nil })
		return errors.Is(err, messaging.ErrLateSubscription)
	}, time.Second, 5*time.Millisecond)
}

func TestChannel_PublishFailure(t *testing.T) {
	broker := inproc.NewBroker()
	ch := broker.NewChannel(discardLogger())
	broker.Close()

	err := ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "1"})

	require.ErrorIs(t, err, messaging.ErrPublishFailure)
	require.ErrorIs(t, err, inproc.ErrBrokerClosed)
}
