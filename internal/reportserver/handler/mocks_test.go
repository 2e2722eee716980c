package handler

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/snapshot"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/engine/aggregate"
	"github.com/sarrafi-backoffice/internal/engine/ledger"
	"github.com/sarrafi-backoffice/internal/engine/report"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, name string, ownerKind shared.OwnerKind, ownerID uuid.UUID, ns shared.Namespace, currency shared.Currency) (*account.Account, error) {
	args := m.Called(ctx, name, ownerKind, ownerID, ns, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetStatement(ctx context.Context, accountID uuid.UUID) (*report.Table, []ledger.Anomaly, error) {
	args := m.Called(ctx, accountID)
	var table *report.Table
	if args.Get(0) != nil {
		table = args.Get(0).(*report.Table)
	}
	var anomalies []ledger.Anomaly
	if args.Get(1) != nil {
		anomalies = args.Get(1).([]ledger.Anomaly)
	}
	return table, anomalies, args.Error(2)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) RecordTransaction(ctx context.Context, req *shared.RecordRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateOpeningBalance(ctx context.Context, id uuid.UUID, amount float64, currency shared.Currency, updatedBy string) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, amount, currency, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteOpeningBalance(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetEntityBalance(ctx context.Context, entityID uuid.UUID) (*entity.Entity, *aggregate.UnifiedBalance, error) {
	args := m.Called(ctx, entityID)
	var ent *entity.Entity
	if args.Get(0) != nil {
		ent = args.Get(0).(*entity.Entity)
	}
	var unified *aggregate.UnifiedBalance
	if args.Get(1) != nil {
		unified = args.Get(1).(*aggregate.UnifiedBalance)
	}
	return ent, unified, args.Error(2)
}

func (m *MockBalanceService) CreateSnapshot(ctx context.Context, entityID uuid.UUID, summary, notes, createdBy string) (*snapshot.BalanceSnapshot, error) {
	args := m.Called(ctx, entityID, summary, notes, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.BalanceSnapshot), args.Error(1)
}

func (m *MockBalanceService) ListSnapshots(ctx context.Context, entityID uuid.UUID) ([]*snapshot.BalanceSnapshot, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*snapshot.BalanceSnapshot), args.Error(1)
}

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) ListRates(ctx context.Context) ([]*rate.Rate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rate.Rate), args.Error(1)
}

func (m *MockRateService) UpsertRate(ctx context.Context, currency shared.Currency, value float64, updatedBy string) (*rate.Rate, error) {
	args := m.Called(ctx, currency, value, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rate.Rate), args.Error(1)
}

type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) CreateTransfer(ctx context.Context, amount, commissionPct float64, currency shared.Currency, counterparty, createdBy string) (*commission.Transfer, error) {
	args := m.Called(ctx, amount, commissionPct, currency, counterparty, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Transfer), args.Error(1)
}

func (m *MockCommissionService) AdvanceTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Transfer), args.Error(1)
}

func (m *MockCommissionService) RejectTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Transfer), args.Error(1)
}

func (m *MockCommissionService) ListTransfers(ctx context.Context) ([]*commission.Transfer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commission.Transfer), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetNetWorth(ctx context.Context) (*service.NetWorthReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NetWorthReport), args.Error(1)
}

// Verify interface implementations
var (
	_ service.AccountService     = (*MockAccountService)(nil)
	_ service.TransactionService = (*MockTransactionService)(nil)
	_ service.BalanceService     = (*MockBalanceService)(nil)
	_ service.RateService        = (*MockRateService)(nil)
	_ service.CommissionService  = (*MockCommissionService)(nil)
	_ service.ReportService      = (*MockReportService)(nil)
)
