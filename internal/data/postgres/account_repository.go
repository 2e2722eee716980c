// Package postgres provides PostgreSQL implementations of the domain
// repositories backing the back-office reference data: accounts, entities,
// exchange rates and commission transfers. The ledger log itself lives in
// MongoDB; nothing here stores a balance.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const accountColumns = "id, name, owner_kind, owner_id, namespace, currency, status, created_at, updated_at"

// Create stores a new account in the database.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, owner_kind, owner_id, namespace, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.OwnerKind,
		nullableUUID(acc.OwnerID),
		acc.Namespace,
		acc.Currency,
		acc.Status,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// ListAll retrieves every account, active and inactive.
func (r *AccountRepository) ListAll(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at`
	return r.list(ctx, query)
}

// ListByNamespace retrieves every account in one ledger namespace.
func (r *AccountRepository) ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE namespace = $1 ORDER BY created_at`
	return r.list(ctx, query, ns)
}

// ListByOwner retrieves every account owned by one entity across namespaces.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerKind shared.OwnerKind, ownerID uuid.UUID) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_kind = $1 AND owner_id = $2 ORDER BY created_at`
	return r.list(ctx, query, ownerKind, ownerID)
}

// Update updates an existing account in the database
func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, owner_kind = $2, owner_id = $3, namespace = $4, currency = $5, status = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		acc.Name,
		acc.OwnerKind,
		nullableUUID(acc.OwnerID),
		acc.Namespace,
		acc.Currency,
		acc.Status,
		acc.UpdatedAt,
		acc.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update account", "id", acc.ID.String(), "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound{AccountID: acc.ID}
	}

	return nil
}

func (r *AccountRepository) list(ctx context.Context, query string, args ...interface{}) ([]*account.Account, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acc, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) scanOne(row pgx.Row) (*account.Account, error) {
	var acc account.Account
	var ownerID *uuid.UUID
	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.OwnerKind,
		&ownerID,
		&acc.Namespace,
		&acc.Currency,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ownerID != nil {
		acc.OwnerID = *ownerID
	}
	return &acc, nil
}

// nullableUUID maps the zero UUID onto SQL NULL so ownerless accounts do not
// carry a bogus owner reference.
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
