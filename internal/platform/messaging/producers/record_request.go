package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/config"
	"github.com/segmentio/kafka-go"
)

type RecordReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// Creates a new report server producer and ensures topic exists
func NewRecordReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*RecordReqMessageProducer, error) {
	if cfg.RecordTopic == "" {
		return nil, fmt.Errorf("kafka record topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for record producer: %w", err)
	}
	defer conn.Close()

	err = ensureTopic(conn, cfg.RecordTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure record topic %s exists for record producer: %w", cfg.RecordTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.RecordTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.RecordTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.RecordTopic, "count", len(messages))
			}
		},
	}

	return &RecordReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.RecordTopic,
	}, nil
}

func (p *RecordReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for record producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message via record producer",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via record producer: %w", p.topic, err)
	}

	p.logger.Debug("Published message via record producer",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *RecordReqMessageProducer) Close() error {
	p.logger.Info("Closing record request Kafka message producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close record kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
