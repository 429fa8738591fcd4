package calculation

import (
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyBrackets taxes taxableIncome against table by sequential consumption:
// each band takes min(remaining, width) in declared order and the unbounded
// band takes whatever is left. Bands that would consume nothing (zero width)
// are skipped so every breakdown row carries a positive amount.
func ApplyBrackets(taxableIncome decimal.Decimal, table domain.BracketTable) (decimal.Decimal, []domain.BandResult) {
	totalTax := decimal.Zero
	breakdown := []domain.BandResult{}
	remaining := taxableIncome

	for _, b := range table.Bands {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		amount := remaining
		if !b.Unbounded {
			amount = decimal.Min(remaining, b.Width)
		}
		if amount.IsZero() {
			continue
		}

		tax := amount.Mul(b.Rate)
		breakdown = append(breakdown, domain.BandResult{Amount: amount, Rate: b.Rate, Tax: tax})
		totalTax = totalTax.Add(tax)
		remaining = remaining.Sub(amount)
	}

	return totalTax, breakdown
}
