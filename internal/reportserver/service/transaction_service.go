package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/platform/messaging/producers"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	txRepo   transaction.Repository
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, txRepo transaction.Repository, producer producers.MessagePublisher) TransactionService {
	return &TransactionServiceImpl{
		txRepo:   txRepo,
		producer: producer,
		logger:   logger,
	}
}

// RecordTransaction publishes a ledger append request to Kafka. Appending is
// asynchronous: the ingestor validates the request against the account and
// the receipt-serial index before the row reaches the log.
func (s *TransactionServiceImpl) RecordTransaction(ctx context.Context, req *shared.RecordRequest) (string, error) {
	if req.TransactionID == uuid.Nil {
		req.TransactionID = uuid.New()
	}

	key := req.TransactionID.String()
	if err := s.producer.Publish(ctx, key, req); err != nil {
		s.logger.Error("Failed to publish record request",
			"account_id", req.AccountID,
			"direction", string(req.Direction),
			"amount", req.Amount,
			"error", err,
		)
		return "", err
	}

	s.logger.Info("Record request published",
		"transaction_id", req.TransactionID,
		"account_id", req.AccountID,
		"direction", string(req.Direction),
		"amount", req.Amount,
	)

	return key, nil
}

// UpdateOpeningBalance corrects an opening-balance row. Regular rows stay
// immutable; corrections to them are recorded as offsetting transactions.
func (s *TransactionServiceImpl) UpdateOpeningBalance(ctx context.Context, id uuid.UUID, amount float64, currency shared.Currency, updatedBy string) (*transaction.Transaction, error) {
	if !shared.ValidAmount(amount) {
		return nil, shared.ErrInvalidAmount
	}
	if !currency.IsKnown() {
		return nil, shared.ErrInvalidCurrency
	}

	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.OpeningBalance {
		return nil, transaction.ErrNotOpeningBalance
	}

	tx.Amount = amount
	tx.TotalAmount = amount
	tx.Currency = currency
	if updatedBy != "" {
		tx.CreatedBy = updatedBy
	}

	if err := s.txRepo.UpdateOpening(ctx, tx); err != nil {
		s.logger.Error("Failed to update opening balance row", "transaction_id", id.String(), "error", err)
		return nil, err
	}

	s.logger.Info("Opening balance row updated",
		"transaction_id", id.String(),
		"amount", amount,
		"currency", string(currency),
	)
	return tx, nil
}

// DeleteOpeningBalance removes an opening-balance row, the only permitted
// deletion in the log.
func (s *TransactionServiceImpl) DeleteOpeningBalance(ctx context.Context, id uuid.UUID) error {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !tx.OpeningBalance {
		return transaction.ErrNotOpeningBalance
	}

	if err := s.txRepo.DeleteOpening(ctx, id); err != nil {
		s.logger.Error("Failed to delete opening balance row", "transaction_id", id.String(), "error", err)
		return err
	}

	s.logger.Info("Opening balance row deleted", "transaction_id", id.String())
	return nil
}

// GetTransactionByID retrieves a ledger row by its ID. Returns nil if not found
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		var notFound transaction.ErrTransactionNotFound
		if errors.As(err, &notFound) {
			s.logger.Info("Transaction not found", "transaction_id", id.String())
			return nil, nil
		}
		s.logger.Error("Failed to get transaction by ID", "transaction_id", id.String(), "error", err)
		return nil, err
	}
	return tx, nil
}
