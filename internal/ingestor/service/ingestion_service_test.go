package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type MockRecordValidator struct {
	mock.Mock
}

func (m *MockRecordValidator) Validate(ctx context.Context, request *shared.RecordRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockAppendRepository struct {
	mock.Mock
	transaction.Repository
}

func (m *MockAppendRepository) Append(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) InvalidateNetWorthReport(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testRequest() *shared.RecordRequest {
	return &shared.RecordRequest{
		TransactionID: uuid.New(),
		AccountID:     uuid.New(),
		Namespace:     shared.NamespaceMain,
		Direction:     shared.DirectionWithdrawal,
		Amount:        200,
		CommissionPct: 2,
		Currency:      shared.CurrencyUSD,
		CreatedBy:     "clerk-1",
	}
}

func TestIngestionService_ProcessRecord(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		invalidator := new(MockCacheInvalidator)
		svc := NewIngestionService(validator, txRepo, invalidator, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).Return(nil)
		txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *transaction.Transaction) bool {
			// Withdrawal commission folds into the effective total.
			return tx.ID == req.TransactionID && tx.TotalAmount == 204 && tx.CommissionAmount == 4
		})).Return(nil)
		invalidator.On("InvalidateNetWorthReport", mock.Anything).Return(nil)

		err := svc.ProcessRecord(context.Background(), req)

		assert.NoError(t, err)
		validator.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		invalidator.AssertExpectations(t)
	})

	t.Run("RejectionPropagates", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		invalidator := new(MockCacheInvalidator)
		svc := NewIngestionService(validator, txRepo, invalidator, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).
			Return(Rejection{Reason: shared.RejectReasonAccountInactive})

		err := svc.ProcessRecord(context.Background(), req)

		var rejection Rejection
		assert.ErrorAs(t, err, &rejection)
		assert.Equal(t, shared.RejectReasonAccountInactive, rejection.Reason)
		txRepo.AssertNotCalled(t, "Append")
	})

	t.Run("DuplicateAppendIsSuccess", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		invalidator := new(MockCacheInvalidator)
		svc := NewIngestionService(validator, txRepo, invalidator, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).Return(nil)
		txRepo.On("Append", mock.Anything, mock.Anything).
			Return(transaction.ErrDuplicateTransaction{TransactionID: req.TransactionID})

		err := svc.ProcessRecord(context.Background(), req)

		assert.NoError(t, err)
		invalidator.AssertNotCalled(t, "InvalidateNetWorthReport")
	})

	t.Run("AppendErrorIsRetryable", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		invalidator := new(MockCacheInvalidator)
		svc := NewIngestionService(validator, txRepo, invalidator, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).Return(nil)
		txRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

		err := svc.ProcessRecord(context.Background(), req)

		assert.Error(t, err)
		var rejection Rejection
		assert.False(t, errors.As(err, &rejection))
		invalidator.AssertNotCalled(t, "InvalidateNetWorthReport")
	})

	t.Run("CacheInvalidationFailureTolerated", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		invalidator := new(MockCacheInvalidator)
		svc := NewIngestionService(validator, txRepo, invalidator, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).Return(nil)
		txRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
		invalidator.On("InvalidateNetWorthReport", mock.Anything).Return(errors.New("redis down"))

		err := svc.ProcessRecord(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("NilCacheSkipsInvalidation", func(t *testing.T) {
		validator := new(MockRecordValidator)
		txRepo := new(MockAppendRepository)
		svc := NewIngestionService(validator, txRepo, nil, testLogger())

		req := testRequest()
		validator.On("Validate", mock.Anything, req).Return(nil)
		txRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		err := svc.ProcessRecord(context.Background(), req)

		assert.NoError(t, err)
	})
}

var (
	_ RecordValidator  = (*MockRecordValidator)(nil)
	_ CacheInvalidator = (*MockCacheInvalidator)(nil)
)
