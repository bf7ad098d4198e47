package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrKafkaNotConfigured is returned when publishing is enabled without brokers or topic
var ErrKafkaNotConfigured = errors.New("kafka: brokers and topic are required")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards every domain event to a Kafka topic as an Envelope,
// keyed by aggregate id so one aggregate's events stay ordered
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher builds a publisher from cfg
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, ErrKafkaNotConfigured
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, cfg.Topic, logger), nil
}

func newKafkaPublisher(w messageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

// Handle implements shared.EventHandler
func (p *KafkaPublisher) Handle(ctx context.Context, ev shared.DomainEvent) error {
	env, err := NewEnvelope(ev)
	if err != nil {
		return err
	}
	value, err := env.Encode()
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(env.AggregateID.String()),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s to %s: %w", env.EventType, p.topic, err)
	}
	p.logger.Debug("event published",
		zap.String("topic", p.topic),
		zap.String("event_type", env.EventType),
		zap.String("event_id", env.EventID.String()),
	)
	return nil
}

// EventTypes is empty: every event is published
func (p *KafkaPublisher) EventTypes() []string { return nil }

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
