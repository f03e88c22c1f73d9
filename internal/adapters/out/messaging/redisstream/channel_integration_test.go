package redisstream_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/messaging/redisstream"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ChannelIntegrationTestSuite runs the stream channel against a real Redis
// server in a container.
type ChannelIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	addr      string
	logger    *slog.Logger
}

func TestChannelIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("redis container tests are skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(ChannelIntegrationTestSuite))
}

func (s *ChannelIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	s.addr, err = container.Endpoint(ctx, "")
	s.Require().NoError(err)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *ChannelIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *ChannelIntegrationTestSuite) newChannel(group string) *redisstream.Channel {
	ch, err := redisstream.NewChannel(context.Background(), redisstream.Config{
		Addr:  s.addr,
		Group: group,
		Block: 100 * time.Millisecond,
	}, s.logger)
	s.Require().NoError(err)
	return ch
}

// TestGroupsReplayStreamInOrder publishes before any consumer exists; each
// group starts at the beginning of the stream and sees every event in order.
func (s *ChannelIntegrationTestSuite) TestGroupsReplayStreamInOrder() {
	orderID := kernel.NewUUID().String()
	publisher := s.newChannel("fooddelivery-restaurant")
	defer func() { s.NoError(publisher.Close()) }()

	topic := events.TopicOrderStatus + "-" + orderID
	statuses := []string{"ACCEPTED", "PREPARING", "READY"}
	for _, status := range statuses {
		s.Require().NoError(publisher.Publish(context.Background(), topic, events.OrderStatusEvent{
			OrderID:   orderID,
			Status:    status,
			Timestamp: time.Now().UTC(),
			ServiceID: events.RestaurantService,
		}))
	}

	for _, group := range []string{"fooddelivery-order", "fooddelivery-delivery"} {
		var (
			mu   sync.Mutex
			seen []string
		)
		ch := s.newChannel(group)
		s.Require().NoError(ch.Subscribe(topic, func(_ context.Context, payload []byte) error {
			var evt events.OrderStatusEvent
			if err := json.Unmarshal(payload, &evt); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, evt.Status)
			return nil
		}))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			s.NoError(ch.Start(ctx))
		}()

		s.Eventually(func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(seen) == len(statuses)
		}, 10*time.Second, 20*time.Millisecond, group)

		cancel()
		<-done
		s.NoError(ch.Close())

		mu.Lock()
		s.Equal(statuses, seen, group)
		mu.Unlock()
	}
}
