package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// CommissionServiceImpl implements the CommissionService interface
type CommissionServiceImpl struct {
	transferRepo commission.Repository
	logger       *slog.Logger
}

// NewCommissionService creates a new commission transfer service
func NewCommissionService(logger *slog.Logger, transferRepo commission.Repository) CommissionService {
	return &CommissionServiceImpl{
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// CreateTransfer opens a transfer in the initial pending state
func (s *CommissionServiceImpl) CreateTransfer(ctx context.Context, amount, commissionPct float64, currency shared.Currency, counterparty, createdBy string) (*commission.Transfer, error) {
	t, err := commission.NewTransfer(amount, commissionPct, currency, counterparty, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.transferRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// AdvanceTransfer moves a transfer one step forward in the workflow
func (s *CommissionServiceImpl) AdvanceTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	t, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := t.Status
	if err := t.Advance(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Commission transfer advanced",
		"transfer_id", id.String(),
		"from", string(from),
		"to", string(t.Status),
	)
	return t, nil
}

// RejectTransfer terminates a non-completed transfer
func (s *CommissionServiceImpl) RejectTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	t, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := t.Status
	if err := t.Reject(); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Commission transfer rejected",
		"transfer_id", id.String(),
		"from", string(from),
	)
	return t, nil
}

// ListTransfers returns every transfer regardless of state
func (s *CommissionServiceImpl) ListTransfers(ctx context.Context) ([]*commission.Transfer, error) {
	return s.transferRepo.ListAll(ctx)
}
