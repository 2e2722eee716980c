// Package aggregate groups ledger balances by owning entity across account
// namespaces. An entity's aggregate balance models its claim against the
// business, independent of which physical account the money sat in.
package aggregate

import (
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/engine/ledger"
)

// EntityCurrencyKey groups movements by owning entity and currency.
type EntityCurrencyKey struct {
	Entity   entity.Key
	Currency shared.Currency
}

// Result carries both views produced by one pass over the log.
type Result struct {
	// PerAccount maps account id to its derived balance, in the account's
	// own currency.
	PerAccount map[uuid.UUID]float64
	// PerEntity maps entity keys to signed per-currency balances. Positive
	// means the business owes the entity.
	PerEntity map[entity.Key]shared.BalanceMap
	// Anomalies lists rows excluded from the aggregates (bad amounts,
	// unknown account references). The raw log keeps them regardless.
	Anomalies []ledger.Anomaly
}

// Aggregate folds the transactions of a single namespace into per-account
// and per-entity balances. Accounts without an owner (cashboxes, office bank
// accounts) contribute to the per-account view only.
func Aggregate(txs []*transaction.Transaction, accounts []*account.Account, ns shared.Namespace) *Result {
	byID := make(map[uuid.UUID]*account.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	var scoped []*transaction.Transaction
	for _, tx := range txs {
		if tx.Namespace == ns {
			scoped = append(scoped, tx)
		}
	}

	perAccount, anomalies := ledger.RunningBalances(scoped)

	// Drop balances for accounts no longer on file; those rows are flagged
	// below by the entity-grouped fold.
	for id := range perAccount {
		if _, ok := byID[id]; !ok {
			delete(perAccount, id)
		}
	}

	grouped, groupAnomalies := ledger.GroupedBalances(scoped, func(tx *transaction.Transaction) (EntityCurrencyKey, bool) {
		acc, ok := byID[tx.AccountID]
		if !ok {
			return EntityCurrencyKey{}, false
		}
		kind, ownerID, owned := acc.OwnerKey()
		if !owned {
			// Office-held accounts have no counterparty aggregate; not an
			// anomaly, just not part of the entity view.
			return EntityCurrencyKey{Entity: entity.Key{Kind: shared.OwnerKindNone}, Currency: acc.Currency}, true
		}
		return EntityCurrencyKey{Entity: entity.Key{Kind: kind, ID: ownerID}, Currency: acc.Currency}, true
	})

	perEntity := make(map[entity.Key]shared.BalanceMap)
	for key, bal := range grouped {
		if key.Entity.Kind == shared.OwnerKindNone {
			continue
		}
		if perEntity[key.Entity] == nil {
			perEntity[key.Entity] = shared.BalanceMap{}
		}
		perEntity[key.Entity].Add(key.Currency, bal)
	}

	// The account-level fold already reported bad-amount rows; only keep the
	// unknown-reference anomalies from the grouped pass to avoid duplicates.
	for _, a := range groupAnomalies {
		if a.Reason == ledger.AnomalyUnknownAccount {
			anomalies = append(anomalies, a)
		}
	}

	return &Result{
		PerAccount: perAccount,
		PerEntity:  perEntity,
		Anomalies:  anomalies,
	}
}

// UnifiedBalance is the display-time merge of one entity's balances across
// namespaces. The main and rented views stay distinct: nothing here sums one
// into the other.
type UnifiedBalance struct {
	Entity entity.Key        `json:"-"`
	Main   shared.BalanceMap `json:"main"`
	Rented shared.BalanceMap `json:"rented"`
}

// Unify pairs the main-namespace and rented-namespace aggregates for one
// entity. Missing sides come back as empty maps.
func Unify(key entity.Key, main, rented *Result) UnifiedBalance {
	u := UnifiedBalance{Entity: key, Main: shared.BalanceMap{}, Rented: shared.BalanceMap{}}
	if main != nil {
		if b, ok := main.PerEntity[key]; ok {
			u.Main = b.Clone()
		}
	}
	if rented != nil {
		if b, ok := rented.PerEntity[key]; ok {
			u.Rented = b.Clone()
		}
	}
	return u
}
