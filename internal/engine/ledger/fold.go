// Package ledger derives balances from the flat transaction log. Everything
// here is a pure function over its inputs: the same records always fold to
// the same balances, which is what lets the surrounding system recompute
// from scratch on every change notification.
package ledger

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
)

// Anomaly reports a record that was excluded from a fold instead of being
// silently summed in. Raw log rows are never dropped; anomalies are the
// audit trail of what the aggregate ignored.
type Anomaly struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Reason        string    `json:"reason"`
}

const (
	AnomalyNonFiniteAmount = "non-finite or non-positive amount clamped to zero"
	AnomalyUnknownAccount  = "account reference unknown or removed"
)

// StatementRow pairs a transaction with the account balance immediately
// after it was applied, in chronological order.
type StatementRow struct {
	Transaction  *transaction.Transaction `json:"transaction"`
	BalanceAfter float64                  `json:"balance_after"`
}

// sortChronological orders transactions by timestamp ascending, breaking
// ties by ID so repeated folds over the same data are deterministic. Input
// order is never trusted; the caller may hand over rows in any order.
func sortChronological(txs []*transaction.Transaction) []*transaction.Transaction {
	sorted := make([]*transaction.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID.String() < sorted[j].ID.String()
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// usable reports whether a row's amounts can be folded. Rows that fail are
// clamped to zero contribution and surfaced as anomalies.
func usable(tx *transaction.Transaction) bool {
	return shared.ValidAmount(tx.Amount) &&
		!math.IsNaN(tx.TotalAmount) && !math.IsInf(tx.TotalAmount, 0) && tx.TotalAmount > 0
}

// RunningBalances folds the log into one balance per account. An account
// with no transactions simply has no entry; absent keys read as zero.
func RunningBalances(txs []*transaction.Transaction) (map[uuid.UUID]float64, []Anomaly) {
	balances := make(map[uuid.UUID]float64)
	var anomalies []Anomaly

	for _, tx := range sortChronological(txs) {
		if !usable(tx) {
			anomalies = append(anomalies, Anomaly{TransactionID: tx.ID, Reason: AnomalyNonFiniteAmount})
			continue
		}
		balances[tx.AccountID] += tx.Signed()
	}
	return balances, anomalies
}

// GroupedBalances folds the log with a caller-chosen grouping key. Rows for
// which keyFor returns false are excluded from the aggregate (typically
// rows pointing at deleted accounts) but reported as anomalies, never
// silently dropped. The same fold serves per-account and per-entity views;
// only the grouping key changes.
func GroupedBalances[K comparable](txs []*transaction.Transaction, keyFor func(*transaction.Transaction) (K, bool)) (map[K]float64, []Anomaly) {
	balances := make(map[K]float64)
	var anomalies []Anomaly

	for _, tx := range sortChronological(txs) {
		if !usable(tx) {
			anomalies = append(anomalies, Anomaly{TransactionID: tx.ID, Reason: AnomalyNonFiniteAmount})
			continue
		}
		key, ok := keyFor(tx)
		if !ok {
			anomalies = append(anomalies, Anomaly{TransactionID: tx.ID, Reason: AnomalyUnknownAccount})
			continue
		}
		balances[key] += tx.Signed()
	}
	return balances, anomalies
}

// Statement produces the chronological rows for one account with the
// balance after each movement, for statement display and printing.
func Statement(txs []*transaction.Transaction, accountID uuid.UUID) ([]StatementRow, []Anomaly) {
	var rows []StatementRow
	var anomalies []Anomaly
	balance := 0.0

	for _, tx := range sortChronological(txs) {
		if tx.AccountID != accountID {
			continue
		}
		if !usable(tx) {
			anomalies = append(anomalies, Anomaly{TransactionID: tx.ID, Reason: AnomalyNonFiniteAmount})
			rows = append(rows, StatementRow{Transaction: tx, BalanceAfter: balance})
			continue
		}
		balance += tx.Signed()
		rows = append(rows, StatementRow{Transaction: tx, BalanceAfter: balance})
	}
	return rows, anomalies
}
