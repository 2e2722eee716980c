package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

var (
	ErrEmptyName   = errors.New("entity name cannot be empty")
	ErrInvalidKind = errors.New("entity kind must be CUSTOMER or PARTNER")
)

// Entity is a customer or partner, the unit of counterparty balance
// aggregation. Balances follow the signed convention from shared.BalanceMap:
// positive means the business owes the entity, negative means the entity
// owes the business.
type Entity struct {
	ID        uuid.UUID         `json:"id"`
	Kind      shared.OwnerKind  `json:"kind"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone,omitempty"`
	Balances  shared.BalanceMap `json:"balances"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewEntity creates a customer or partner with empty balances.
func NewEntity(kind shared.OwnerKind, name, phone string) (*Entity, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if kind != shared.OwnerKindCustomer && kind != shared.OwnerKindPartner {
		return nil, ErrInvalidKind
	}

	now := time.Now()
	return &Entity{
		ID:        uuid.New(),
		Kind:      kind,
		Name:      name,
		Phone:     phone,
		Balances:  shared.BalanceMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Key returns the aggregation key used to group ledger movements per entity.
func (e *Entity) Key() Key {
	return Key{Kind: e.Kind, ID: e.ID}
}

// Key identifies an entity across namespaces.
type Key struct {
	Kind shared.OwnerKind
	ID   uuid.UUID
}
