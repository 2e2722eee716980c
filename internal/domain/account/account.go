package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Common errors
var (
	ErrEmptyName        = errors.New("account name cannot be empty")
	ErrUnknownCurrency  = errors.New("account currency is not a known currency")
	ErrOwnerRequired    = errors.New("owner id is required for customer and partner accounts")
	ErrAlreadyInactive  = errors.New("account is already inactive")
	ErrInvalidNamespace = errors.New("invalid ledger namespace")
)

// Status marks whether an account may receive new movements. Accounts are
// never hard-deleted so historical ledger entries stay resolvable.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Account is a cash or bank location. It carries no stored balance: balances
// are always derived from the transaction log.
type Account struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	OwnerKind shared.OwnerKind `json:"owner_kind"`
	OwnerID   uuid.UUID        `json:"owner_id,omitempty"`
	Namespace shared.Namespace `json:"namespace"`
	Currency  shared.Currency  `json:"currency"`
	Status    Status           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewAccount creates an active account with the given parameters.
func NewAccount(name string, ownerKind shared.OwnerKind, ownerID uuid.UUID, ns shared.Namespace, currency shared.Currency) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !currency.IsKnown() {
		return nil, ErrUnknownCurrency
	}
	switch ns {
	case shared.NamespaceMain, shared.NamespaceRented, shared.NamespaceDedicated:
	default:
		return nil, ErrInvalidNamespace
	}
	if ownerKind != shared.OwnerKindNone && ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}

	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		Name:      name,
		OwnerKind: ownerKind,
		OwnerID:   ownerID,
		Namespace: ns,
		Currency:  currency,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Deactivate closes the account for new movements. The ledger history is kept.
func (a *Account) Deactivate() error {
	if a.Status == StatusInactive {
		return ErrAlreadyInactive
	}
	a.Status = StatusInactive
	a.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the account accepts new movements.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// OwnerKey returns the (ownerKind, ownerID) aggregation key, or false when
// the account has no counterparty owner (e.g. the office cashbox).
func (a *Account) OwnerKey() (shared.OwnerKind, uuid.UUID, bool) {
	if a.OwnerKind == shared.OwnerKindNone || a.OwnerID == uuid.Nil {
		return shared.OwnerKindNone, uuid.Nil, false
	}
	return a.OwnerKind, a.OwnerID, true
}
