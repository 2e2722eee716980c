package entity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines entity persistence operations
type Repository interface {
	Create(ctx context.Context, entity *Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entity, error)
	ListAll(ctx context.Context) ([]*Entity, error)
	Update(ctx context.Context, entity *Entity) error
	WithTx(tx pgx.Tx) Repository
}

// ErrEntityNotFound indicates missing entity
type ErrEntityNotFound struct {
	EntityID uuid.UUID
}

func (e ErrEntityNotFound) Error() string {
	return "entity not found: " + e.EntityID.String()
}
