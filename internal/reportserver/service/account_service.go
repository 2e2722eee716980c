package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	engineledger "github.com/sarrafi-backoffice/internal/engine/ledger"
	"github.com/sarrafi-backoffice/internal/engine/report"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	txRepo      transaction.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, txRepo transaction.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

// CreateAccount registers a new cash or bank account
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, name string, ownerKind shared.OwnerKind, ownerID uuid.UUID, ns shared.Namespace, currency shared.Currency) (*account.Account, error) {
	acc, err := account.NewAccount(name, ownerKind, ownerID, ns, currency)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// DeactivateAccount closes the account for new movements. The ledger history
// stays resolvable, which is why accounts are never hard-deleted.
func (s *AccountServiceImpl) DeactivateAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := acc.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// GetStatement refetches the account's ledger rows and folds them into a
// chronological statement with running balances.
func (s *AccountServiceImpl) GetStatement(ctx context.Context, accountID uuid.UUID) (*report.Table, []engineledger.Anomaly, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows, anomalies := engineledger.Statement(txs, accountID)
	table := report.FormatStatement(acc.Name, acc.Currency, rows)
	return table, anomalies, nil
}
