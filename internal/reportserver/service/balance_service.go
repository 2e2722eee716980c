package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/snapshot"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/engine/aggregate"
)

// BalanceServiceImpl implements the BalanceService interface. Balances are
// never read from storage: every call refetches the log and folds it from
// scratch, so a corrected ledger immediately corrects every view.
type BalanceServiceImpl struct {
	entityRepo   entity.Repository
	accountRepo  account.Repository
	txRepo       transaction.Repository
	snapshotRepo snapshot.Repository
}

// NewBalanceService creates a new balance service
func NewBalanceService(entityRepo entity.Repository, accountRepo account.Repository, txRepo transaction.Repository, snapshotRepo snapshot.Repository) BalanceService {
	return &BalanceServiceImpl{
		entityRepo:   entityRepo,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		snapshotRepo: snapshotRepo,
	}
}

// GetEntityBalance derives the unified main + rented view for one entity.
func (s *BalanceServiceImpl) GetEntityBalance(ctx context.Context, entityID uuid.UUID) (*entity.Entity, *aggregate.UnifiedBalance, error) {
	ent, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, nil, err
	}

	unified, err := s.deriveUnified(ctx, ent)
	if err != nil {
		return nil, nil, err
	}
	return ent, unified, nil
}

// CreateSnapshot captures the entity's current derived balances as an
// immutable historical record.
func (s *BalanceServiceImpl) CreateSnapshot(ctx context.Context, entityID uuid.UUID, summary, notes, createdBy string) (*snapshot.BalanceSnapshot, error) {
	ent, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	unified, err := s.deriveUnified(ctx, ent)
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.New(entityID, unified.Main, unified.Rented, summary, notes, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.snapshotRepo.Create(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// ListSnapshots returns the entity's historical snapshots, newest first.
func (s *BalanceServiceImpl) ListSnapshots(ctx context.Context, entityID uuid.UUID) ([]*snapshot.BalanceSnapshot, error) {
	if _, err := s.entityRepo.GetByID(ctx, entityID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.ListByEntityID(ctx, entityID)
}

func (s *BalanceServiceImpl) deriveUnified(ctx context.Context, ent *entity.Entity) (*aggregate.UnifiedBalance, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	mainTxs, err := s.txRepo.ListByNamespace(ctx, shared.NamespaceMain)
	if err != nil {
		return nil, err
	}
	rentedTxs, err := s.txRepo.ListByNamespace(ctx, shared.NamespaceRented)
	if err != nil {
		return nil, err
	}

	mainAgg := aggregate.Aggregate(mainTxs, accounts, shared.NamespaceMain)
	rentedAgg := aggregate.Aggregate(rentedTxs, accounts, shared.NamespaceRented)

	unified := aggregate.Unify(ent.Key(), mainAgg, rentedAgg)
	return &unified, nil
}
