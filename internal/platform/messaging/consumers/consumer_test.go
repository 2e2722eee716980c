package consumers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sarrafi-backoffice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The reader's internal config is not reachable once built, so construction
// checks stop at the wiring. The fetch/commit loop needs a live broker.

func TestNewKafkaConsumer(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	consumer := NewKafkaConsumer(context.Background(), logger, &config.KafkaConfig{
		Brokers:       "localhost:9092",
		RecordTopic:   "ledger_record_requests",
		ConsumerGroup: "ledger-ingestor",
		MinBytes:      1024,
		MaxBytes:      10240,
		MaxWait:       time.Second,
	})

	require.NotNil(t, consumer)
	require.NotNil(t, consumer.reader)
	assert.Equal(t, logger, consumer.logger)
}

func TestKafkaConsumer_Close_NilReader(t *testing.T) {
	consumer := &KafkaConsumer{
		reader: nil,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	require.NoError(t, consumer.Close())
}
