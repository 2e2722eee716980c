package service

import (
	"context"

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
)

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount registers a new cash or bank account
	CreateAccount(ctx context.Context, name string, ownerKind shared.OwnerKind, ownerID uuid.UUID, ns shared.Namespace, currency shared.Currency) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// DeactivateAccount closes the account for new movements, keeping history
	DeactivateAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetStatement derives the chronological statement with running balances
	// for one account. Anomalous rows are listed, not folded in.
	GetStatement(ctx context.Context, accountID uuid.UUID) (*report.Table, []ledger.Anomaly, error)
}

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	// RecordTransaction publishes a ledger append request to Kafka.
	// The write is asynchronous; the returned ID identifies the pending row.
	RecordTransaction(ctx context.Context, req *shared.RecordRequest) (string, error)

	// GetTransactionByID retrieves a ledger row by its ID.
	// Returns nil if the transaction is not found
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)

	// UpdateOpeningBalance corrects an opening-balance row, the one
	// administrative exception to ledger immutability.
	// Returns ErrNotOpeningBalance when the row lacks the flag.
	UpdateOpeningBalance(ctx context.Context, id uuid.UUID, amount float64, currency shared.Currency, updatedBy string) (*transaction.Transaction, error)

	// DeleteOpeningBalance removes an opening-balance row
	DeleteOpeningBalance(ctx context.Context, id uuid.UUID) error
}

// BalanceService derives entity balances and manages balance snapshots
type BalanceService interface {
	// GetEntityBalance returns the unified main + rented view for one entity.
	// The two namespaces stay separate; nothing is summed across them.
	GetEntityBalance(ctx context.Context, entityID uuid.UUID) (*entity.Entity, *aggregate.UnifiedBalance, error)

	// CreateSnapshot captures the entity's current derived balances
	CreateSnapshot(ctx context.Context, entityID uuid.UUID, summary, notes, createdBy string) (*snapshot.BalanceSnapshot, error)

	// ListSnapshots returns the entity's historical snapshots, newest first
	ListSnapshots(ctx context.Context, entityID uuid.UUID) ([]*snapshot.BalanceSnapshot, error)
}

// RateService manages the exchange rate table
type RateService interface {
	ListRates(ctx context.Context) ([]*rate.Rate, error)

	// UpsertRate stores a quote for a currency; the rate must be positive and
	// the reference currency stays fixed at 1
	UpsertRate(ctx context.Context, currency shared.Currency, value float64, updatedBy string) (*rate.Rate, error)
}

// CommissionService manages the two-phase commission transfer workflow
type CommissionService interface {
	CreateTransfer(ctx context.Context, amount, commissionPct float64, currency shared.Currency, counterparty, createdBy string) (*commission.Transfer, error)

	// AdvanceTransfer moves a transfer one step forward in the workflow.
	// Returns ErrInvalidTransition for steps the state machine forbids.
	AdvanceTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error)

	// RejectTransfer terminates a non-completed transfer
	RejectTransfer(ctx context.Context, id uuid.UUID) (*commission.Transfer, error)

	ListTransfers(ctx context.Context) ([]*commission.Transfer, error)
}

// ReportService produces the consolidated net-worth report
type ReportService interface {
	// GetNetWorth returns the cached report when fresh, otherwise recomputes
	// it from the full ledger. Concurrent misses share one recompute.
	GetNetWorth(ctx context.Context) (*NetWorthReport, error)
}
