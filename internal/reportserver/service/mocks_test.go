package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/snapshot"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/platform/messaging/producers"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAll(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*account.Account, error) {
	args := m.Called(ctx, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerKind shared.OwnerKind, ownerID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, ownerKind, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	m.Called(tx)
	return m
}

type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, ent *entity.Entity) error {
	args := m.Called(ctx, ent)
	return args.Error(0)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListAll(ctx context.Context) ([]*entity.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Entity), args.Error(1)
}

func (m *MockEntityRepository) Update(ctx context.Context, ent *entity.Entity) error {
	args := m.Called(ctx, ent)
	return args.Error(0)
}

func (m *MockEntityRepository) WithTx(tx pgx.Tx) entity.Repository {
	m.Called(tx)
	return m
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReceiptSerial(ctx context.Context, serial string) (*transaction.Transaction, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateOpening(ctx context.Context, tx *transaction.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteOpening(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) Upsert(ctx context.Context, r *rate.Rate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRateRepository) ListAll(ctx context.Context) ([]*rate.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rate.Rate), args.Error(1)
}

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) Create(ctx context.Context, t *commission.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockCommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Transfer), args.Error(1)
}

func (m *MockCommissionRepository) ListPending(ctx context.Context) ([]*commission.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commission.Transfer), args.Error(1)
}

func (m *MockCommissionRepository) ListAll(ctx context.Context) ([]*commission.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commission.Transfer), args.Error(1)
}

func (m *MockCommissionRepository) Update(ctx context.Context, t *commission.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockCommissionRepository) WithTx(tx pgx.Tx) commission.Repository {
	m.Called(tx)
	return m
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Create(ctx context.Context, snap *snapshot.BalanceSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSnapshotRepository) ListByEntityID(ctx context.Context, entityID uuid.UUID) ([]*snapshot.BalanceSnapshot, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*snapshot.BalanceSnapshot), args.Error(1)
}

type MockMessagingProducer struct {
	mock.Mock
}

func (m *MockMessagingProducer) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagingProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetNetWorthReport(ctx context.Context, dest interface{}) error {
	args := m.Called(ctx, dest)
	return args.Error(0)
}

func (m *MockReportCache) SetNetWorthReport(ctx context.Context, report interface{}) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportCache) InvalidateNetWorthReport(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Verify interface implementations
var (
	_ account.Repository         = (*MockAccountRepository)(nil)
	_ entity.Repository          = (*MockEntityRepository)(nil)
	_ transaction.Repository     = (*MockTransactionRepository)(nil)
	_ rate.Repository            = (*MockRateRepository)(nil)
	_ commission.Repository      = (*MockCommissionRepository)(nil)
	_ snapshot.Repository        = (*MockSnapshotRepository)(nil)
	_ producers.MessagePublisher = (*MockMessagingProducer)(nil)
	_ ReportCache                = (*MockReportCache)(nil)
)
