// Package kafka implements the event channel on Apache Kafka with IBM/sarama.
// Each service joins its own consumer group, so every service sees every
// message of the topics it subscribed to.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/ports"

	"github.com/IBM/sarama"
)

// Config selects the cluster and the consumer group of one service.
type Config struct {
	Brokers  []string
	GroupID  string
	ClientID string
	// RetryBackoff is the pause after a failed Consume. Zero means two seconds.
	RetryBackoff time.Duration
}

const defaultRetryBackoff = 2 * time.Second

// Channel implements ports.EventChannel with a SyncProducer and a ConsumerGroup.
type Channel struct {
	producer sarama.SyncProducer
	group    sarama.ConsumerGroup
	registry *messaging.Registry
	logger   *slog.Logger

	retryBackoff time.Duration
}

var _ ports.EventChannel = (*Channel)(nil)

// NewSaramaConfig returns the client settings shared by producer and consumer.
// Publish returns only once all in-sync replicas acknowledged the record.
func NewSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Net.DialTimeout = 30 * time.Second
	cfg.Net.ReadTimeout = 30 * time.Second
	cfg.Net.WriteTimeout = 30 * time.Second
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Group.Session.Timeout = 45 * time.Second
	return cfg
}

// NewChannel dials the cluster.
func NewChannel(cfg Config, logger *slog.Logger) (*Channel, error) {
	saramaCfg := NewSaramaConfig(cfg.ClientID)

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaCfg)
	if err != nil {
		_ = producer.Close()
		return nil, fmt.Errorf("failed to create kafka consumer group %s: %w", cfg.GroupID, err)
	}

	logger.Info("kafka channel created", "brokers", cfg.Brokers, "group", cfg.GroupID)
	ch := NewChannelFromClients(producer, group, logger)
	if cfg.RetryBackoff > 0 {
		ch.retryBackoff = cfg.RetryBackoff
	}
	return ch, nil
}

// NewChannelFromClients wraps already built sarama clients.
func NewChannelFromClients(producer sarama.SyncProducer, group sarama.ConsumerGroup, logger *slog.Logger) *Channel {
	return &Channel{
		producer: producer,
		group:    group,
		registry: messaging.NewRegistry(logger),
		logger:   logger,

		retryBackoff: defaultRetryBackoff,
	}
}

// Publish sends one record keyed by the message's order or delivery id.
func (c *Channel) Publish(ctx context.Context, topic string, message any) error {
	key, payload, err := messaging.Encode(message)
	if err != nil {
		return messaging.NewPublishFailureError(topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := c.producer.SendMessage(msg)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to publish", "topic", topic, "key", key, "error", err)
		return messaging.NewPublishFailureError(topic, err)
	}

	c.logger.DebugContext(ctx, "published", "topic", topic, "key", key, "partition", partition, "offset", offset)
	return nil
}

// Subscribe registers the handler of topic. It fails once Start was called.
func (c *Channel) Subscribe(topic string, handler ports.EventHandler) error {
	return c.registry.Subscribe(topic, handler)
}

// Start joins the consumer group and consumes until ctx is cancelled.
// Consume returns on every rebalance, so it is called in a loop. A failed
// Consume is retried after the retry backoff.
func (c *Channel) Start(ctx context.Context) error {
	topics, err := c.registry.Seal()
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		<-ctx.Done()
		return nil
	}

	handler := &groupHandler{registry: c.registry, logger: c.logger}
	for {
		if err = c.group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.ErrorContext(ctx, "kafka consume failed", "topics", topics, "error", err, "retry_in", c.retryBackoff)
			if !sleep(ctx, c.retryBackoff) {
				return nil
			}
			continue
		}

		if ctx.Err() != nil {
			return nil
		}
	}
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

// Close closes the producer and leaves the consumer group.
func (c *Channel) Close() error {
	return errors.Join(c.producer.Close(), c.group.Close())
}

// groupHandler feeds claimed messages to the registry, which serialises
// handler calls across partitions.
type groupHandler struct {
	registry *messaging.Registry
	logger   *slog.Logger
}

func (h *groupHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka session started", "member", session.MemberID(), "claims", session.Claims())
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.registry.Dispatch(ctx, msg.Topic, msg.Value)
			session.MarkMessage(msg, "")
		case <-ctx.Done():
			return nil
		}
	}
}
