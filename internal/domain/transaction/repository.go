package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Repository defines the append-only ledger log persistence operations
type Repository interface {
	// Append stores a new transaction.
	// Returns ErrDuplicateTransaction if the transaction ID already exists.
	Append(ctx context.Context, tx *Transaction) error

	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// GetByReceiptSerial returns nil, nil when no transaction carries the serial.
	GetByReceiptSerial(ctx context.Context, serial string) (*Transaction, error)

	ListByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Transaction, error)
	CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*Transaction, error)
	ListAll(ctx context.Context) ([]*Transaction, error)

	// Opening-balance rows are the only mutable rows in the log.
	UpdateOpening(ctx context.Context, tx *Transaction) error
	DeleteOpening(ctx context.Context, id uuid.UUID) error
}

// ErrTransactionNotFound indicates a missing ledger row
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// ErrDuplicateTransaction indicates an append with an already-used ID
type ErrDuplicateTransaction struct {
	TransactionID uuid.UUID
}

func (e ErrDuplicateTransaction) Error() string {
	return "transaction already recorded: " + e.TransactionID.String()
}
