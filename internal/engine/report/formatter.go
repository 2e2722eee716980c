// Package report turns engine output into tabular structures for printing,
// CSV export and share-text. Purely presentational: no numeric value is
// altered beyond display formatting.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/engine/ledger"
	"github.com/sarrafi-backoffice/internal/engine/networth"
)

// SummaryLine is one labeled figure in a report header block.
type SummaryLine struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Table is the output contract shared by every printable report.
type Table struct {
	Title   string        `json:"title"`
	Summary []SummaryLine `json:"summary"`
	Headers []string      `json:"headers"`
	Rows    [][]string    `json:"rows"`
}

// FormatNetWorth lays out the consolidated net-worth report: the three
// derived metrics up top, then one row per currency bucket.
func FormatNetWorth(r *networth.Report) *Table {
	t := &Table{
		Title: "Net Worth Report",
		Summary: []SummaryLine{
			{Label: "Gross Assets", Value: r.GrossAssets, Currency: string(shared.ReferenceCurrency)},
			{Label: "Net Worth", Value: r.NetWorth, Currency: string(shared.ReferenceCurrency)},
			{Label: "Liquid Net Worth", Value: r.LiquidNetWorth, Currency: string(shared.ReferenceCurrency)},
		},
		Headers: []string{"Category", "Currency", "Amount", "Amount (USD)"},
	}

	appendBucket := func(category string, bucket shared.BalanceMap, totalUSD float64) {
		for _, currency := range sortedCurrencies(bucket) {
			t.Rows = append(t.Rows, []string{
				category,
				string(currency),
				formatAmount(bucket[currency]),
				"",
			})
		}
		t.Rows = append(t.Rows, []string{category, "TOTAL", "", formatAmount(totalUSD)})
	}

	appendBucket("Liquid Assets", r.LiquidAssets, r.TotalLiquidAssetsUSD)
	appendBucket("Receivables", r.Receivables, r.TotalReceivablesUSD)
	appendBucket("Liabilities", r.Liabilities, r.TotalLiabilitiesUSD)
	appendBucket("Commission Liability", r.CommissionLiability, r.TotalCommissionLiabilityUSD)

	if len(r.MissingRates) > 0 {
		names := make([]string, len(r.MissingRates))
		for i, c := range r.MissingRates {
			names[i] = string(c)
		}
		t.Rows = append(t.Rows, []string{"Warning", strings.Join(names, ","), "no exchange rate, excluded from totals", ""})
	}

	return t
}

// FormatStatement lays out one account's chronological statement with the
// running balance after each movement.
func FormatStatement(accountName string, currency shared.Currency, rows []ledger.StatementRow) *Table {
	t := &Table{
		Title:   fmt.Sprintf("Account Statement - %s", accountName),
		Headers: []string{"Date", "Direction", "Amount", "Commission", "Total", "Balance"},
	}

	var closing float64
	for _, row := range rows {
		tx := row.Transaction
		t.Rows = append(t.Rows, []string{
			tx.CreatedAt.Format("2006-01-02 15:04"),
			string(tx.Direction),
			formatAmount(tx.Amount),
			formatAmount(tx.CommissionAmount),
			formatAmount(tx.TotalAmount),
			formatAmount(row.BalanceAfter),
		})
		closing = row.BalanceAfter
	}

	t.Summary = []SummaryLine{
		{Label: "Closing Balance", Value: closing, Currency: string(currency)},
	}
	return t
}

func sortedCurrencies(b shared.BalanceMap) []shared.Currency {
	out := make([]shared.Currency, 0, len(b))
	for c := range b {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// formatAmount renders with two decimal places and thousands separators.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, frac := parts[0], parts[1]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
