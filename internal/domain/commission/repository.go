package commission

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines commission transfer persistence operations
type Repository interface {
	Create(ctx context.Context, transfer *Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	ListPending(ctx context.Context) ([]*Transfer, error)
	ListAll(ctx context.Context) ([]*Transfer, error)
	Update(ctx context.Context, transfer *Transfer) error
	WithTx(tx pgx.Tx) Repository
}

// ErrTransferNotFound indicates missing transfer
type ErrTransferNotFound struct {
	TransferID uuid.UUID
}

func (e ErrTransferNotFound) Error() string {
	return "commission transfer not found: " + e.TransferID.String()
}
