// Package networth classifies derived balances into asset and liability
// buckets and normalizes them to the reference currency. The classification
// rules mirror the office's accounting convention exactly; see Report for
// the output contract.
package networth

import (
	"math"

	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/engine/rates"
)

// HoldingStatus mirrors account status for the cash/bank inputs; only
// active holdings count as liquid assets.
type HoldingStatus string

const (
	HoldingActive   HoldingStatus = "ACTIVE"
	HoldingInactive HoldingStatus = "INACTIVE"
)

// Holding is one cash or bank balance owned by the business itself.
type Holding struct {
	Name     string
	Currency shared.Currency
	Balance  float64
	Status   HoldingStatus
}

// Inputs is everything one analysis needs, fetched up front. The analyzer
// never reaches into ambient state; rerunning with identical inputs yields
// identical output.
type Inputs struct {
	Holdings         []Holding
	EntityBalances   []shared.BalanceMap
	PendingTransfers []*commission.Transfer
	Rates            *rates.Table
}

// Report is the complete net-worth contract: four per-currency buckets,
// their reference-currency totals, and the three derived metrics.
type Report struct {
	LiquidAssets        shared.BalanceMap `json:"liquid_assets"`
	Receivables         shared.BalanceMap `json:"receivables"`
	Liabilities         shared.BalanceMap `json:"liabilities"`
	CommissionLiability shared.BalanceMap `json:"commission_liability"`

	TotalLiquidAssetsUSD        float64 `json:"total_liquid_assets_usd"`
	TotalReceivablesUSD         float64 `json:"total_receivables_usd"`
	TotalLiabilitiesUSD         float64 `json:"total_liabilities_usd"`
	TotalCommissionLiabilityUSD float64 `json:"total_commission_liability_usd"`

	// GrossAssets and NetWorth assume receivables will be collected;
	// LiquidNetWorth assumes they never are. Both views are part of the
	// contract and are reported side by side.
	GrossAssets    float64 `json:"gross_assets"`
	NetWorth       float64 `json:"net_worth"`
	LiquidNetWorth float64 `json:"liquid_net_worth"`

	// MissingRates lists currencies whose nonzero balances converted to
	// zero for lack of a usable quote. Totals that silently dropped a
	// currency are flagged here instead of being silently wrong.
	MissingRates []shared.Currency `json:"missing_rates,omitempty"`
}

// Analyze classifies the inputs and computes the consolidated report.
//
// Classification rules:
//   - active holdings with positive balance -> liquid assets
//   - entity balance > 0 -> liability (business owes the entity)
//   - entity balance < 0 -> receivable, at abs(balance)
//   - pending commission transfers -> commission split: the fee is a
//     receivable, the principal net of fee a commission liability
func Analyze(in Inputs) *Report {
	r := &Report{
		LiquidAssets:        shared.BalanceMap{},
		Receivables:         shared.BalanceMap{},
		Liabilities:         shared.BalanceMap{},
		CommissionLiability: shared.BalanceMap{},
	}

	for _, h := range in.Holdings {
		if h.Status != HoldingActive {
			continue
		}
		if h.Balance > 0 && !math.IsNaN(h.Balance) {
			r.LiquidAssets.Add(h.Currency, h.Balance)
		}
	}

	for _, balances := range in.EntityBalances {
		for currency, balance := range balances {
			if math.IsNaN(balance) {
				continue
			}
			switch {
			case balance > 0:
				r.Liabilities.Add(currency, balance)
			case balance < 0:
				r.Receivables.Add(currency, -balance)
			}
		}
	}

	for _, t := range in.PendingTransfers {
		if t == nil || !t.CountsTowardLiability() {
			continue
		}
		r.Receivables.Add(t.Currency, t.Commission())
		r.CommissionLiability.Add(t.Currency, t.LiabilityPortion())
	}

	table := in.Rates
	if table == nil {
		table = rates.NewTable(nil)
	}
	r.TotalLiquidAssetsUSD = sumConverted(table, r.LiquidAssets)
	r.TotalReceivablesUSD = sumConverted(table, r.Receivables)
	r.TotalLiabilitiesUSD = sumConverted(table, r.Liabilities)
	r.TotalCommissionLiabilityUSD = sumConverted(table, r.CommissionLiability)

	r.GrossAssets = r.TotalLiquidAssetsUSD + r.TotalReceivablesUSD
	r.NetWorth = r.GrossAssets - r.TotalLiabilitiesUSD - r.TotalCommissionLiabilityUSD
	r.LiquidNetWorth = r.TotalLiquidAssetsUSD - r.TotalLiabilitiesUSD - r.TotalCommissionLiabilityUSD

	r.MissingRates = table.Missing()
	return r
}

func sumConverted(table *rates.Table, bucket shared.BalanceMap) float64 {
	total := 0.0
	for currency, amount := range bucket {
		total += table.Convert(amount, currency)
	}
	return total
}
