package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/ngtax/internal/domain"
)

// CSVFormatter writes one row per band plus total and net rows per regime.
// Amounts are plain decimals with two places so spreadsheets can sum them.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Regime", "Row", "Amount", "Rate", "Tax"}); err != nil {
		return nil, err
	}

	for _, r := range []domain.RegimeResult{result.Old, result.New} {
		for i, b := range r.Breakdown {
			row := []string{r.Regime, "band " + strconv.Itoa(i+1), b.Amount.StringFixed(2), b.Rate.StringFixed(4), b.Tax.StringFixed(2)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		rows := [][]string{
			{r.Regime, "deductions", r.TotalDeductionsApplied.StringFixed(2), "", ""},
			{r.Regime, "total", r.TaxableIncome.StringFixed(2), r.EffectiveRate.StringFixed(4), r.TotalTax.StringFixed(2)},
			{r.Regime, "net annual", r.NetAnnualIncome.StringFixed(2), "", ""},
			{r.Regime, "net monthly", r.NetMonthlyIncome.StringFixed(2), "", ""},
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
