// Package rates converts per-currency amounts into the reference currency.
// A Table is an immutable snapshot of the quoted exchange rates: callers
// build one per report so no torn reads happen across currencies within a
// single computation.
package rates

import (
	"math"
	"sort"

	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Table is a pure lookup/convert structure over a rate snapshot. The
// reference currency always converts at 1.
type Table struct {
	rates   map[shared.Currency]float64
	missing map[shared.Currency]bool
}

// NewTable builds a table from stored quotes. Non-positive or non-finite
// quotes are treated as absent.
func NewTable(quotes []*rate.Rate) *Table {
	t := &Table{
		rates:   make(map[shared.Currency]float64, len(quotes)+1),
		missing: make(map[shared.Currency]bool),
	}
	t.rates[shared.ReferenceCurrency] = 1
	for _, q := range quotes {
		if q == nil {
			continue
		}
		if q.RateToReference > 0 && !math.IsInf(q.RateToReference, 0) {
			t.rates[q.Currency] = q.RateToReference
		}
	}
	return t
}

// Rate returns the stored quote for a currency and whether one exists.
func (t *Table) Rate(c shared.Currency) (float64, bool) {
	r, ok := t.rates[c]
	return r, ok
}

// Convert returns amount expressed in the reference currency. A currency
// with no usable quote converts to 0 rather than failing, matching the
// established reporting behavior; the currency is recorded and reported via
// Missing so totals are auditable.
func (t *Table) Convert(amount float64, from shared.Currency) float64 {
	if math.IsNaN(amount) {
		return 0
	}
	r, ok := t.rates[from]
	if !ok || r == 0 {
		if amount != 0 {
			t.missing[from] = true
		}
		return 0
	}
	return amount / r
}

// Missing lists the currencies that were asked to convert a nonzero amount
// without a usable quote, sorted for stable output.
func (t *Table) Missing() []shared.Currency {
	out := make([]shared.Currency, 0, len(t.missing))
	for c := range t.missing {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
