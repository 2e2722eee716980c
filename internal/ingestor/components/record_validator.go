package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/ingestor/service"
)

type RecordValidatorImpl struct {
	accountRepo account.Repository
	txRepo      transaction.Repository
	logger      *slog.Logger
}

func NewRecordValidator(accountRepo account.Repository, txRepo transaction.Repository, logger *slog.Logger) service.RecordValidator {
	return &RecordValidatorImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		logger:      logger,
	}
}

// Validate checks the request shape, the target account, and the
// receipt-serial index. Rejection errors are permanent; everything else is a
// transient failure the caller may retry.
func (v *RecordValidatorImpl) Validate(ctx context.Context, request *shared.RecordRequest) error {
	logger := v.logger
	if request.CorrelationID != "" {
		logger = v.logger.With("correlation_id", request.CorrelationID)
	}

	if !request.Direction.Valid() {
		logger.Error("Unknown direction", "req_id", request.TransactionID.String(), "direction", string(request.Direction))
		return service.Rejection{Reason: shared.RejectReasonUnknownError, Detail: "unknown direction " + string(request.Direction)}
	}
	if !shared.ValidAmount(request.Amount) {
		logger.Error("Invalid amount", "req_id", request.TransactionID.String(), "amount", request.Amount)
		return service.Rejection{Reason: shared.RejectReasonInvalidAmount, Detail: fmt.Sprintf("amount %v", request.Amount)}
	}
	if request.CommissionPct < 0 || request.CommissionPct > 100 {
		logger.Error("Invalid commission percentage", "req_id", request.TransactionID.String(), "commission_pct", request.CommissionPct)
		return service.Rejection{Reason: shared.RejectReasonInvalidAmount, Detail: fmt.Sprintf("commission percentage %v", request.CommissionPct)}
	}
	if !request.Currency.IsKnown() {
		logger.Error("Unknown currency", "req_id", request.TransactionID.String(), "currency", string(request.Currency))
		return service.Rejection{Reason: shared.RejectReasonUnknownCurrency, Detail: string(request.Currency)}
	}

	acc, err := v.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		var notFound account.ErrAccountNotFound
		if errors.As(err, &notFound) {
			logger.Error("Account not found", "req_id", request.TransactionID.String(), "account_id", request.AccountID.String())
			return service.Rejection{Reason: shared.RejectReasonAccountNotFound, Detail: request.AccountID.String()}
		}
		return fmt.Errorf("failed to load account %s: %w", request.AccountID.String(), err)
	}

	if !acc.IsActive() {
		logger.Error("Account is inactive", "req_id", request.TransactionID.String(), "account_id", request.AccountID.String())
		return service.Rejection{Reason: shared.RejectReasonAccountInactive, Detail: request.AccountID.String()}
	}
	if acc.Currency != request.Currency {
		logger.Error("Currency mismatch",
			"req_id", request.TransactionID.String(),
			"account_currency", string(acc.Currency),
			"request_currency", string(request.Currency),
		)
		return service.Rejection{
			Reason: shared.RejectReasonCurrencyMismatch,
			Detail: fmt.Sprintf("account holds %s, request carries %s", acc.Currency, request.Currency),
		}
	}

	if request.ReceiptSerial != "" {
		existing, err := v.txRepo.GetByReceiptSerial(ctx, request.ReceiptSerial)
		if err != nil {
			return fmt.Errorf("failed to check receipt serial %q: %w", request.ReceiptSerial, err)
		}
		if existing != nil && existing.ID != request.TransactionID {
			logger.Error("Duplicate receipt serial",
				"req_id", request.TransactionID.String(),
				"receipt_serial", request.ReceiptSerial,
				"existing_transaction_id", existing.ID.String(),
			)
			return service.Rejection{Reason: shared.RejectReasonDuplicateReceipt, Detail: request.ReceiptSerial}
		}
	}

	return nil
}
