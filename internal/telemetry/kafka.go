package telemetry

import (
	"context"
	"fmt"

	"mine_evacuation/internal/config"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes frames keyed by device id, so one panel stays on one partition.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, f Frame) error {
	payload, err := encode(f)
	if err != nil {
		return fmt.Errorf("kafka: marshal frame: %w", err)
	}
	msg := kafka.Message{Key: []byte(f.DeviceID), Value: payload, Time: f.Timestamp}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write frame: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

var _ Publisher = (*KafkaPublisher)(nil)
