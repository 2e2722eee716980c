package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAll(ctx context.Context) ([]*Account, error)
	ListByNamespace(ctx context.Context, ns shared.Namespace) ([]*Account, error)
	ListByOwner(ctx context.Context, ownerKind shared.OwnerKind, ownerID uuid.UUID) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}
