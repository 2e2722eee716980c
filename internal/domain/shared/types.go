package shared

import (
	"errors"
	"math"
)

var (
	ErrInvalidDirection = errors.New("invalid transaction direction")
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrInvalidAmount    = errors.New("amount must be a positive finite number")
)

// Currency identifies one of the currencies the office trades in.
// ReferenceCurrency is the currency all exchange rates are quoted against
// and the one every report total is normalized to.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyAED Currency = "AED"
	CurrencyIRR Currency = "IRR"
	CurrencyTRY Currency = "TRY"
	CurrencyGBP Currency = "GBP"

	ReferenceCurrency = CurrencyUSD
)

// KnownCurrencies lists every currency accepted at the ingestion boundary,
// in display order.
var KnownCurrencies = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyAED, CurrencyIRR, CurrencyTRY, CurrencyGBP,
}

// IsKnown reports whether c is one of the accepted currencies.
func (c Currency) IsKnown() bool {
	for _, k := range KnownCurrencies {
		if c == k {
			return true
		}
	}
	return false
}

// BalanceMap holds signed per-currency amounts. A key that is absent reads
// as zero. For entity balances the sign convention is: positive means the
// business owes the entity, negative means the entity owes the business.
type BalanceMap map[Currency]float64

// Get returns the balance for a currency, zero when absent.
func (b BalanceMap) Get(c Currency) float64 {
	return b[c]
}

// Add accumulates amount into the currency bucket, dropping the key when the
// result lands exactly on zero is deliberately NOT done: a zero entry records
// that the currency was touched.
func (b BalanceMap) Add(c Currency, amount float64) {
	b[c] += amount
}

// Clone returns an independent copy of the map.
func (b BalanceMap) Clone() BalanceMap {
	out := make(BalanceMap, len(b))
	for c, v := range b {
		out[c] = v
	}
	return out
}

// Direction defines the two possible movements against an account.
type Direction string

const (
	DirectionDeposit    Direction = "DEPOSIT"
	DirectionWithdrawal Direction = "WITHDRAWAL"
)

// Valid reports whether d is a recognised direction.
func (d Direction) Valid() bool {
	return d == DirectionDeposit || d == DirectionWithdrawal
}

// OwnerKind identifies which kind of counterparty owns an account.
type OwnerKind string

const (
	OwnerKindCustomer OwnerKind = "CUSTOMER"
	OwnerKindPartner  OwnerKind = "PARTNER"
	OwnerKindNone     OwnerKind = "NONE"
)

// Namespace identifies an independent ledger: balances from different
// namespaces are tracked separately and merged only at display time.
type Namespace string

const (
	NamespaceMain      Namespace = "MAIN"
	NamespaceRented    Namespace = "RENTED"
	NamespaceDedicated Namespace = "DEDICATED"
)

// LinkedRefKind enumerates the closed set of provenance tags a ledger
// movement may carry.
type LinkedRefKind string

const (
	LinkedRefCashbox     LinkedRefKind = "CASHBOX"
	LinkedRefBankAccount LinkedRefKind = "BANK_ACCOUNT"
	LinkedRefCustomer    LinkedRefKind = "CUSTOMER"
	LinkedRefPartner     LinkedRefKind = "PARTNER"
	LinkedRefOther       LinkedRefKind = "OTHER"
)

// LinkedRef ties a movement to its origin. Unrecognised kinds are coerced to
// LinkedRefOther at the ingestion boundary rather than carried verbatim.
type LinkedRef struct {
	Kind        LinkedRefKind `json:"kind" bson:"kind"`
	ID          string        `json:"id,omitempty" bson:"id,omitempty"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
}

// Normalize maps any unknown kind onto LinkedRefOther.
func (r LinkedRef) Normalize() LinkedRef {
	switch r.Kind {
	case LinkedRefCashbox, LinkedRefBankAccount, LinkedRefCustomer, LinkedRefPartner, LinkedRefOther:
		return r
	}
	r.Kind = LinkedRefOther
	return r
}

// ValidAmount reports whether v is usable as a monetary amount: positive
// and finite.
func ValidAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
