package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/ingestor/service"
	"github.com/sarrafi-backoffice/internal/platform/messaging/producers"
)

// RecordEventHandler handles incoming record request messages from Kafka
type RecordEventHandler struct {
	ingestionService service.IngestionService
	producer         producers.DeadLetterPublisher
	logger           *slog.Logger
}

// NewRecordEventHandler creates a new handler
func NewRecordEventHandler(
	logger *slog.Logger,
	ingestionService service.IngestionService,
	producer producers.DeadLetterPublisher,
) *RecordEventHandler {
	return &RecordEventHandler{
		ingestionService: ingestionService,
		producer:         producer,
		logger:           logger,
	}
}

// HandleMessage processes one Kafka message. Returning nil commits the
// offset; returning an error leaves it uncommitted for redelivery. Permanent
// rejections go to the DLQ and commit so they never block the partition.
func (h *RecordEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.RecordRequest
	if err := json.Unmarshal(value, &request); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal record request from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Unprocessable message published to DLQ", "message_key", string(key), "reason", dlqReason)
				return nil
			}
		}
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received record request",
		"transaction_id", request.TransactionID.String(),
		"account_id", request.AccountID.String(),
		"direction", string(request.Direction),
		"amount", request.Amount,
	)

	if err := h.ingestionService.ProcessRecord(ctx, &request); err != nil {
		var rejection service.Rejection
		if errors.As(err, &rejection) {
			logger.Error("Record request rejected",
				"transaction_id", request.TransactionID.String(),
				"reason", string(rejection.Reason),
				"detail", rejection.Detail,
			)
			if h.producer != nil {
				if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, string(rejection.Reason)); dlqErr != nil {
					h.logger.Error("Failed to publish rejected request to DLQ",
						"dlq_error", dlqErr,
						"transaction_id", request.TransactionID.String(),
					)
					return fmt.Errorf("DLQ publish for rejected request %s failed: %w", request.TransactionID.String(), dlqErr)
				}
			}
			// Rejections are permanent; commit so the partition keeps moving.
			return nil
		}

		logger.Error("Failed to process record request",
			"transaction_id", request.TransactionID.String(),
			"error", err,
		)
		return fmt.Errorf("processing record request %s failed: %w", request.TransactionID.String(), err)
	}

	logger.Info("Successfully processed record request", "transaction_id", request.TransactionID.String())
	return nil
}
