// Package redisstream implements the event channel on Redis Streams with
// redis/go-redis. A topic is a stream; each service reads through its own
// consumer group and acknowledges every entry after its handler ran.
package redisstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	fieldKey     = "key"
	fieldPayload = "payload"

	defaultBlock  = 2 * time.Second
	defaultMaxLen = 10000
	readCount     = 16
)

// Config selects the server and the consumer identity of one service.
type Config struct {
	Addr     string
	Group    string
	Consumer string

	// Block bounds one XREADGROUP wait. Zero means two seconds.
	Block time.Duration

	// MaxLen caps every stream approximately. Zero means 10000 entries.
	MaxLen int64
}

// Channel implements ports.EventChannel on Redis Streams.
type Channel struct {
	client   redis.UniversalClient
	cfg      Config
	registry *messaging.Registry
	logger   *slog.Logger
}

var _ ports.EventChannel = (*Channel)(nil)

// NewChannel connects to cfg.Addr and checks the connection.
func NewChannel(ctx context.Context, cfg Config, logger *slog.Logger) (*Channel, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("redis stream channel created", "addr", cfg.Addr, "group", cfg.Group)
	return NewChannelFromClient(client, cfg, logger), nil
}

// NewChannelFromClient wraps an existing client.
func NewChannelFromClient(client redis.UniversalClient, cfg Config, logger *slog.Logger) *Channel {
	if cfg.Block <= 0 {
		cfg.Block = defaultBlock
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = defaultMaxLen
	}
	if cfg.Consumer == "" {
		cfg.Consumer = cfg.Group
	}

	return &Channel{
		client:   client,
		cfg:      cfg,
		registry: messaging.NewRegistry(logger),
		logger:   logger,
	}
}

// Publish appends the message to the topic stream. XADD returns once the
// server stored the entry.
func (c *Channel) Publish(ctx context.Context, topic string, message any) error {
	key, payload, err := messaging.Encode(message)
	if err != nil {
		return messaging.NewPublishFailureError(topic, err)
	}

	id, err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		MaxLen: c.cfg.MaxLen,
		Approx: true,
		Values: map[string]any{fieldKey: key, fieldPayload: payload},
	}).Result()
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to publish", "topic", topic, "key", key, "error", err)
		return messaging.NewPublishFailureError(topic, err)
	}

	c.logger.DebugContext(ctx, "published", "topic", topic, "key", key, "id", id)
	return nil
}

// Subscribe registers the handler of topic. It fails once Start was called.
func (c *Channel) Subscribe(topic string, handler ports.EventHandler) error {
	return c.registry.Subscribe(topic, handler)
}

// Start creates the consumer groups and reads until ctx is cancelled.
// Entries are dispatched one at a time in stream order and acknowledged
// whether or not the handler succeeded.
func (c *Channel) Start(ctx context.Context) error {
	topics, err := c.registry.Seal()
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		<-ctx.Done()
		return nil
	}

	for _, topic := range topics {
		if err = c.ensureGroup(ctx, topic); err != nil {
			return err
		}
	}

	streams := make([]string, 0, 2*len(topics))
	streams = append(streams, topics...)
	for range topics {
		streams = append(streams, ">")
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			Streams:  streams,
			Count:    readCount,
			Block:    c.cfg.Block,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			c.logger.ErrorContext(ctx, "redis read failed", "topics", topics, "error", err)
			if !sleep(ctx, c.cfg.Block) {
				return nil
			}
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				c.handle(ctx, stream.Stream, msg)
			}
		}
	}
}

// Close closes the Redis client.
func (c *Channel) Close() error {
	return c.client.Close()
}

func (c *Channel) handle(ctx context.Context, topic string, msg redis.XMessage) {
	payload, ok := msg.Values[fieldPayload].(string)
	if !ok {
		c.logger.WarnContext(ctx, "dropping stream entry without payload", "topic", topic, "id", msg.ID)
	} else {
		c.registry.Dispatch(ctx, topic, []byte(payload))
	}

	if err := c.client.XAck(ctx, topic, c.cfg.Group, msg.ID).Err(); err != nil {
		c.logger.ErrorContext(ctx, "failed to ack", "topic", topic, "id", msg.ID, "error", err)
	}
}

// ensureGroup creates the group at the start of the stream, creating the
// stream too if needed. An existing group is left as is.
func (c *Channel) ensureGroup(ctx context.Context, topic string) error {
	err := c.client.XGroupCreateMkStream(ctx, topic, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s on %s: %w", c.cfg.Group, topic, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
