package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
)

type IngestionServiceImpl struct {
	validator RecordValidator
	txRepo    transaction.Repository
	cache     CacheInvalidator
	logger    *slog.Logger
}

func NewIngestionService(
	validator RecordValidator,
	txRepo transaction.Repository,
	cache CacheInvalidator,
	logger *slog.Logger,
) IngestionService {
	return &IngestionServiceImpl{
		validator: validator,
		txRepo:    txRepo,
		cache:     cache,
		logger:    logger,
	}
}

// ProcessRecord validates a record request and appends it to the ledger log.
// Rejection errors propagate to the caller for DLQ routing; transient errors
// propagate for retry. A duplicate transaction ID means the append already
// happened, which is a success.
func (s *IngestionServiceImpl) ProcessRecord(ctx context.Context, request *shared.RecordRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing record request",
		"transaction_id", request.TransactionID.String(),
		"account_id", request.AccountID.String(),
		"direction", string(request.Direction),
		"amount", request.Amount,
	)

	if err := s.validator.Validate(ctx, request); err != nil {
		return err
	}

	tx, err := transaction.New(request)
	if err != nil {
		// The validator vets the same fields, so a constructor failure here
		// is unexpected; reject rather than retry forever.
		logger.Error("Failed to build transaction from validated request", "transaction_id", request.TransactionID.String(), "error", err)
		return Rejection{Reason: shared.RejectReasonUnknownError, Detail: err.Error()}
	}

	if err := s.txRepo.Append(ctx, tx); err != nil {
		var duplicate transaction.ErrDuplicateTransaction
		if errors.As(err, &duplicate) {
			logger.Info("Transaction already recorded (idempotency)", "transaction_id", tx.ID.String())
			return nil
		}
		logger.Error("Failed to append transaction", "transaction_id", tx.ID.String(), "error", err)
		return fmt.Errorf("failed to append transaction %s: %w", tx.ID.String(), err)
	}

	if s.cache != nil {
		// The cached report is stale the moment the log grows. Invalidation
		// failures only delay freshness, never the append.
		if err := s.cache.InvalidateNetWorthReport(ctx); err != nil {
			logger.Warn("Failed to invalidate report cache", "error", err)
		}
	}

	logger.Info("Transaction appended to ledger",
		"transaction_id", tx.ID.String(),
		"account_id", tx.AccountID.String(),
		"namespace", string(tx.Namespace),
		"total_amount", tx.TotalAmount,
	)
	return nil
}
