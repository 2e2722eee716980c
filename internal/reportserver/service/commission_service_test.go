package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommissionService_CreateTransfer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		transferRepo.On("Create", mock.Anything, mock.AnythingOfType("*commission.Transfer")).Return(nil)

		tr, err := svc.CreateTransfer(context.Background(), 1000, 2.5, shared.CurrencyUSD, "Sarraf Ali", "clerk-1")

		assert.NoError(t, err)
		assert.Equal(t, commission.StatusPendingDepositApproval, tr.Status)
		assert.InDelta(t, 25.0, tr.Commission(), 1e-9)
		assert.InDelta(t, 975.0, tr.LiabilityPortion(), 1e-9)
		transferRepo.AssertExpectations(t)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		tr, err := svc.CreateTransfer(context.Background(), -5, 1, shared.CurrencyUSD, "Sarraf Ali", "clerk-1")

		assert.ErrorIs(t, err, shared.ErrInvalidAmount)
		assert.Nil(t, tr)
		transferRepo.AssertNotCalled(t, "Create")
	})
}

func TestCommissionService_AdvanceTransfer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		tr, err := commission.NewTransfer(1000, 2.5, shared.CurrencyUSD, "Sarraf Ali", "clerk-1")
		assert.NoError(t, err)
		transferRepo.On("GetByID", mock.Anything, tr.ID).Return(tr, nil)
		transferRepo.On("Update", mock.Anything, tr).Return(nil)

		got, err := svc.AdvanceTransfer(context.Background(), tr.ID)

		assert.NoError(t, err)
		assert.Equal(t, commission.StatusPendingExecution, got.Status)
		transferRepo.AssertExpectations(t)
	})

	t.Run("CompletedCannotAdvance", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		tr := &commission.Transfer{ID: uuid.New(), Status: commission.StatusCompleted}
		transferRepo.On("GetByID", mock.Anything, tr.ID).Return(tr, nil)

		got, err := svc.AdvanceTransfer(context.Background(), tr.ID)

		var invalid commission.ErrInvalidTransition
		assert.ErrorAs(t, err, &invalid)
		assert.Nil(t, got)
		transferRepo.AssertNotCalled(t, "Update")
	})

	t.Run("NotFound", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		id := uuid.New()
		transferRepo.On("GetByID", mock.Anything, id).Return(nil, commission.ErrTransferNotFound{TransferID: id})

		got, err := svc.AdvanceTransfer(context.Background(), id)

		var notFound commission.ErrTransferNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Nil(t, got)
	})
}

func TestCommissionService_RejectTransfer(t *testing.T) {
	t.Run("RejectsPendingExecution", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		tr := &commission.Transfer{ID: uuid.New(), Status: commission.StatusPendingExecution}
		transferRepo.On("GetByID", mock.Anything, tr.ID).Return(tr, nil)
		transferRepo.On("Update", mock.Anything, tr).Return(nil)

		got, err := svc.RejectTransfer(context.Background(), tr.ID)

		assert.NoError(t, err)
		assert.Equal(t, commission.StatusRejected, got.Status)
	})

	t.Run("CompletedCannotBeRejected", func(t *testing.T) {
		transferRepo := new(MockCommissionRepository)
		svc := NewCommissionService(testLogger(), transferRepo)

		tr := &commission.Transfer{ID: uuid.New(), Status: commission.StatusCompleted}
		transferRepo.On("GetByID", mock.Anything, tr.ID).Return(tr, nil)

		got, err := svc.RejectTransfer(context.Background(), tr.ID)

		var invalid commission.ErrInvalidTransition
		assert.ErrorAs(t, err, &invalid)
		assert.Nil(t, got)
	})
}

func TestCommissionService_ListTransfers(t *testing.T) {
	transferRepo := new(MockCommissionRepository)
	svc := NewCommissionService(testLogger(), transferRepo)

	expected := []*commission.Transfer{{ID: uuid.New(), Status: commission.StatusCompleted}}
	transferRepo.On("ListAll", mock.Anything).Return(expected, nil)

	got, err := svc.ListTransfers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	transferRepo.AssertExpectations(t)
}
