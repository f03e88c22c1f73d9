package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/domain/events"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSession struct {
	sarama.ConsumerGroupSession

	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim

	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type fakeGroup struct {
	sarama.ConsumerGroup

	closed bool
}

func (g *fakeGroup) Close() error {
	g.closed = true
	return nil
}

// failingGroup fails every Consume as an unreachable cluster does.
type failingGroup struct {
	sarama.ConsumerGroup

	calls atomic.Int32
}

func (g *failingGroup) Consume(context.Context, []string, sarama.ConsumerGroupHandler) error {
	g.calls.Add(1)
	return sarama.ErrOutOfBrokers
}

func TestChannel_Publish(t *testing.T) {
	t.Run("should send a keyed JSON record", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, NewSaramaConfig("test"))
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var evt events.OrderStatusEvent
			if err := json.Unmarshal(val, &evt); err != nil {
				return err
			}
			if evt.OrderID != "o-1" || evt.Status != "READY" {
				return errors.New("unexpected payload")
			}
			return nil
		})

		ch := NewChannelFromClients(producer, &fakeGroup{}, discardLogger())
		err := ch.Publish(t.Context(), events.TopicOrderStatus, events.OrderStatusEvent{OrderID: "o-1", Status: "READY"})

		require.NoError(t, err)
		require.NoError(t, producer.Close())
	})

	t.Run("should wrap broker errors as publish failures", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, NewSaramaConfig("test"))
		producer.ExpectSendMessageAndFail(sarama.ErrNotEnoughReplicas)

		ch := NewChannelFromClients(producer, &fakeGroup{}, discardLogger())
		err := ch.Publish(t.Context(), events.TopicOrders, map[string]string{"id": "o-1"})

		require.ErrorIs(t, err, messaging.ErrPublishFailure)
		require.ErrorIs(t, err, sarama.ErrNotEnoughReplicas)
		require.NoError(t, producer.Close())
	})
}

func TestChannel_Close(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig("test"))
	group := &fakeGroup{}
	ch := NewChannelFromClients(producer, group, discardLogger())

	require.NoError(t, ch.Close())
	assert.True(t, group.closed)
}

func TestChannel_StartSealsSubscriptions(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig("test"))
	ch := NewChannelFromClients(producer, &fakeGroup{}, discardLogger())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.NoError(t, ch.Start(ctx))

	err := ch.Subscribe(events.TopicOrders, func(context.Context, []byte) error { return nil })
	require.ErrorIs(t, err, messaging.ErrLateSubscription)
	require.ErrorIs(t, ch.Start(t.Context()), messaging.ErrAlreadyStarted)
}

func TestGroupHandler_ConsumeClaim(t *testing.T) {
	registry := messaging.NewRegistry(discardLogger())
	var got []string
	require.NoError(t, registry.Subscribe(events.TopicOrders, func(_ context.Context, p []byte) error {
		got = append(got, string(p))
		if string(p) == "bad" {
			return errors.New("undecodable")
		}
		return nil
	}))

	h := &groupHandler{registry: registry, logger: discardLogger()}
	session := &fakeSession{ctx: t.Context()}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	claim.messages <- &sarama.ConsumerMessage{Topic: events.TopicOrders, Offset: 1, Value: []byte("first")}
	claim.messages <- &sarama.ConsumerMessage{Topic: events.TopicOrders, Offset: 2, Value: []byte("bad")}
	claim.messages <- &sarama.ConsumerMessage{Topic: events.TopicOrders, Offset: 3, Value: []byte("third")}
	close(claim.messages)

	require.NoError(t, h.ConsumeClaim(session, claim))

	assert.Equal(t, []string{"first", "bad", "third"}, got)
	assert.Equal(t, []int64{1, 2, 3}, session.marked)
}

func TestChannel_StartBacksOffOnConsumeErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewSaramaConfig("test"))
	group := &failingGroup{}
	ch := NewChannelFromClients(producer, group, discardLogger())
	ch.retryBackoff = 40 * time.Millisecond
	require.NoError(t, ch.Subscribe(events.TopicOrders, func(context.Context, []byte) error { return nil }))

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	started := time.Now()
	require.NoError(t, ch.Start(ctx))

	assert.GreaterOrEqual(t, time.Since(started), 90*time.Millisecond, "Start must return only when ctx is done")
	assert.LessOrEqual(t, group.calls.Load(), int32(4))
	assert.GreaterOrEqual(t, group.calls.Load(), int32(2))
}
