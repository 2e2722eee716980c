package snapshot

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines balance snapshot persistence operations
type Repository interface {
	Create(ctx context.Context, snapshot *BalanceSnapshot) error
	ListByEntityID(ctx context.Context, entityID uuid.UUID) ([]*BalanceSnapshot, error)
}
