package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/tracing"
)

const (
	DefaultTopic       = "payment_success"
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = time.Second

	headerEventType = "event_type"

	batchFlushInterval = 5 * time.Millisecond
)

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers     []string
	Topic       string
	ClientID    string
	DialTimeout time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	return c
}

// KafkaPublisher relays payment events to a Kafka topic keyed by user id.
// Its lifecycle is explicit: construct, Connect, Publish, Close.
type KafkaPublisher struct {
	cfg    Config
	writer Writer
	log    *slog.Logger

	mu        sync.RWMutex
	connected bool
	closed    bool
}

func NewKafkaPublisher(cfg Config, log *slog.Logger) *KafkaPublisher {
	cfg = cfg.withDefaults()
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		// Publish owns retries and writes one message per call, so the
		// batch is flushed as soon as it holds that message.
		MaxAttempts:  1,
		BatchSize:    1,
		BatchTimeout: batchFlushInterval,
		Transport: &kafka.Transport{
			ClientID:    cfg.ClientID,
			DialTimeout: cfg.DialTimeout,
		},
	}
	return &KafkaPublisher{cfg: cfg, writer: w, log: log}
}

// NewKafkaPublisherWithWriter uses w as the transport and treats it as
// already connected.
func NewKafkaPublisherWithWriter(cfg Config, w Writer, log *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{cfg: cfg.withDefaults(), writer: w, log: log, connected: true}
}

// Connect dials the configured brokers and fails if none is reachable.
func (p *KafkaPublisher) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("Connect: publisher closed")
	}
	if p.connected {
		return nil
	}
	if len(p.cfg.Brokers) == 0 {
		return fmt.Errorf("Connect: no brokers configured")
	}

	broker, clusterSize, err := p.dialAny(ctx)
	if err != nil {
		return fmt.Errorf("Connect: %w", err)
	}

	p.connected = true
	p.log.Info("kafka producer connected", "broker", broker, "cluster_size", clusterSize, "topic", p.cfg.Topic)
	return nil
}

// Ping fetches cluster metadata from the first reachable broker. It backs
// the readiness check, so a cluster lost after Connect shows up there.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	if !p.Connected() {
		return fmt.Errorf("Ping: %w", domain.ErrNotConnected)
	}
	if len(p.cfg.Brokers) == 0 {
		return fmt.Errorf("Ping: no brokers configured")
	}
	if _, _, err := p.dialAny(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) dialAny(ctx context.Context) (string, int, error) {
	dialer := &kafka.Dialer{ClientID: p.cfg.ClientID, Timeout: p.cfg.DialTimeout}

	var errs []error
	for _, broker := range p.cfg.Brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", broker, err))
			continue
		}
		brokers, err := conn.Brokers()
		conn.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: metadata: %w", broker, err))
			continue
		}
		return broker, len(brokers), nil
	}
	return "", 0, errors.Join(errs...)
}

func (p *KafkaPublisher) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected && !p.closed
}

// Publish sends event to the topic, retrying transport failures up to the
// configured number of attempts with a fixed delay between them. The same
// encoded bytes are sent on every attempt. A message may be delivered more
// than once if an earlier attempt reached the broker but its ack was lost.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.PaymentSuccessEvent) error {
	if !p.Connected() {
		return fmt.Errorf("Publish: %w", domain.ErrNotConnected)
	}
	log := logging.FromContext(ctx)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("Publish: marshal: %w", err)
	}

	headers := tracing.InjectKafkaHeaders(ctx, []kafka.Header{
		{Key: headerEventType, Value: []byte(event.EventType)},
	})

	attempts := 0
	op := func() error {
		attempts++
		msg := kafka.Message{
			Key:     []byte(event.UserID),
			Value:   value,
			Headers: headers,
		}
		return p.writer.WriteMessages(ctx, msg)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("kafka send failed, retrying",
			"user_id", event.UserID,
			"payment_id", event.PaymentID,
			"attempt", attempts,
			"attempts_left", p.cfg.MaxAttempts-attempts,
			"retry_in", wait,
			"error", err,
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.cfg.RetryDelay), uint64(p.cfg.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		log.Error("failed to send payment event after retries",
			"user_id", event.UserID,
			"payment_id", event.PaymentID,
			"attempts", attempts,
			"error", err,
		)
		return fmt.Errorf("Publish: %w after %d attempts: %w", domain.ErrPublishFailed, attempts, err)
	}

	log.Info("payment event published",
		"topic", p.cfg.Topic,
		"user_id", event.UserID,
		"payment_id", event.PaymentID,
		"attempts", attempts,
	)
	return nil
}

// Close flushes and releases the writer. It is safe to call more than once.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("Close: %w", err)
	}
	return nil
}
