package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
)

// CommissionRepository implements the commission.Repository interface for PostgreSQL
type CommissionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCommissionRepository creates a new PostgreSQL commission-transfer repository.
func NewCommissionRepository(logger *slog.Logger, db *persistence.PostgresDB) commission.Repository {
	return &CommissionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction.
func (r *CommissionRepository) WithTx(tx pgx.Tx) commission.Repository {
	return &CommissionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const transferColumns = "id, amount, commission_pct, currency, counterparty, status, created_by, created_at, updated_at"

// Create stores a new commission transfer.
func (r *CommissionRepository) Create(ctx context.Context, t *commission.Transfer) error {
	query := `
		INSERT INTO commission_transfers (id, amount, commission_pct, currency, counterparty, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.Amount,
		t.CommissionPct,
		t.Currency,
		t.Counterparty,
		t.Status,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create commission transfer", "error", err)
		return fmt.Errorf("failed to create commission transfer: %w", err)
	}

	return nil
}

// GetByID retrieves a transfer by its ID
func (r *CommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*commission.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM commission_transfers WHERE id = $1`

	t, err := scanTransfer(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, commission.ErrTransferNotFound{TransferID: id}
		}
		r.logger.Error("Failed to get commission transfer", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get commission transfer: %w", err)
	}

	return t, nil
}

// ListPending retrieves the transfers in the two states that weigh on the
// net-worth report.
func (r *CommissionRepository) ListPending(ctx context.Context) ([]*commission.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM commission_transfers WHERE status = ANY($1) ORDER BY created_at`
	return r.list(ctx, query, []string{
		string(commission.StatusPendingExecution),
		string(commission.StatusPendingWithdrawalApproval),
	})
}

// ListAll retrieves every transfer regardless of state.
func (r *CommissionRepository) ListAll(ctx context.Context) ([]*commission.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM commission_transfers ORDER BY created_at`
	return r.list(ctx, query)
}

// Update persists a workflow state change.
func (r *CommissionRepository) Update(ctx context.Context, t *commission.Transfer) error {
	query := `
		UPDATE commission_transfers
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.querier.Exec(ctx, query, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		r.logger.Error("Failed to update commission transfer", "id", t.ID.String(), "error", err)
		return fmt.Errorf("failed to update commission transfer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return commission.ErrTransferNotFound{TransferID: t.ID}
	}

	return nil
}

func (r *CommissionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*commission.Transfer, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list commission transfers", "error", err)
		return nil, fmt.Errorf("failed to list commission transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*commission.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission transfer: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commission transfers: %w", err)
	}

	return transfers, nil
}

func scanTransfer(row pgx.Row) (*commission.Transfer, error) {
	var t commission.Transfer
	err := row.Scan(
		&t.ID,
		&t.Amount,
		&t.CommissionPct,
		&t.Currency,
		&t.Counterparty,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
