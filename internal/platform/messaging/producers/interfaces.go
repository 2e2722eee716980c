package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes record requests to the main ledger topic. The
// value is JSON-encoded before writing.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher routes permanently rejected messages to the DLQ topic,
// tagged with the rejection reason.
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
