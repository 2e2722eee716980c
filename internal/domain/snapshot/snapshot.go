package snapshot

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

var ErrMissingEntity = errors.New("snapshot requires an entity id")

// BalanceSnapshot captures an entity's aggregated balances at one point in
// time, for historical statement reconstruction only. Snapshots are immutable
// once created and never feed back into live balance computation.
type BalanceSnapshot struct {
	ID             uuid.UUID         `json:"id" bson:"snapshot_id"`
	EntityID       uuid.UUID         `json:"entity_id" bson:"entity_id"`
	MainBalances   shared.BalanceMap `json:"main_balances" bson:"main_balances"`
	RentedBalances shared.BalanceMap `json:"rented_balances" bson:"rented_balances"`
	Summary        string            `json:"summary,omitempty" bson:"summary,omitempty"`
	Notes          string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy      string            `json:"created_by" bson:"created_by"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
}

// New captures the given balances. The maps are cloned so later mutation of
// the live maps cannot reach into a stored snapshot.
func New(entityID uuid.UUID, main, rented shared.BalanceMap, summary, notes, createdBy string) (*BalanceSnapshot, error) {
	if entityID == uuid.Nil {
		return nil, ErrMissingEntity
	}
	return &BalanceSnapshot{
		ID:             uuid.New(),
		EntityID:       entityID,
		MainBalances:   main.Clone(),
		RentedBalances: rented.Clone(),
		Summary:        summary,
		Notes:          notes,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}, nil
}
