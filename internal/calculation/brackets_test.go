package calculation

import (
	"math/rand"
	"testing"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyBrackets_ZeroIncome(t *testing.T) {
	tax, breakdown := ApplyBrackets(decimal.Zero, OldRegimeTable())

	assert.True(t, tax.IsZero(), "zero taxable income pays no tax")
	assert.Empty(t, breakdown, "no bands should be visited")
}

func TestApplyBrackets_OldRegime(t *testing.T) {
	tax, breakdown := ApplyBrackets(dec("4120000"), OldRegimeTable())

	assert.True(t, tax.Equal(dec("780800")), "got %s", tax)
	require.Len(t, breakdown, 6)

	want := []struct{ amount, rate, tax string }{
		{"300000", "0.07", "21000"},
		{"300000", "0.11", "33000"},
		{"500000", "0.15", "75000"},
		{"500000", "0.19", "95000"},
		{"1600000", "0.21", "336000"},
		{"920000", "0.24", "220800"},
	}
	for i, w := range want {
		assert.True(t, breakdown[i].Amount.Equal(dec(w.amount)), "band %d amount %s", i, breakdown[i].Amount)
		assert.True(t, breakdown[i].Rate.Equal(dec(w.rate)), "band %d rate %s", i, breakdown[i].Rate)
		assert.True(t, breakdown[i].Tax.Equal(dec(w.tax)), "band %d tax %s", i, breakdown[i].Tax)
	}
}

func TestApplyBrackets_NewRegime(t *testing.T) {
	tax, breakdown := ApplyBrackets(dec("5160000"), NewRegimeTable())

	assert.True(t, tax.Equal(dec("718800")), "got %s", tax)
	require.Len(t, breakdown, 3)
	assert.True(t, breakdown[0].Tax.IsZero(), "first new-regime band is tax free")
	assert.True(t, breakdown[1].Tax.Equal(dec("330000")))
	assert.True(t, breakdown[2].Amount.Equal(dec("2160000")))
	assert.True(t, breakdown[2].Tax.Equal(dec("388800")))
}

func TestApplyBrackets_ExactBoundaryStops(t *testing.T) {
	tax, breakdown := ApplyBrackets(dec("300000"), OldRegimeTable())

	require.Len(t, breakdown, 1, "income ending on a boundary must not open the next band")
	assert.True(t, tax.Equal(dec("21000")))
}

func TestApplyBrackets_ZeroWidthBandSkipped(t *testing.T) {
	table := domain.BracketTable{
		Name: "gap",
		Bands: []domain.Band{
			{Width: dec("100"), Rate: dec("0.1")},
			{Width: decimal.Zero, Rate: dec("0.5")},
			{Rate: dec("0.2"), Unbounded: true},
		},
	}

	tax, breakdown := ApplyBrackets(dec("150"), table)

	require.Len(t, breakdown, 2)
	assert.True(t, breakdown[1].Rate.Equal(dec("0.2")))
	assert.True(t, tax.Equal(dec("20")))
}

func TestApplyBrackets_UnboundedOnly(t *testing.T) {
	table := domain.BracketTable{Name: "flat", Bands: []domain.Band{{Rate: dec("0.1"), Unbounded: true}}}

	tax, breakdown := ApplyBrackets(dec("1234567.89"), table)

	require.Len(t, breakdown, 1)
	assert.True(t, tax.Equal(dec("123456.789")))
}

func TestApplyBrackets_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tables := []domain.BracketTable{OldRegimeTable(), NewRegimeTable()}

	for _, table := range tables {
		prevTax := decimal.Zero
		prevIncome := decimal.Zero
		incomes := make([]decimal.Decimal, 0, 200)
		for i := 0; i < 200; i++ {
			incomes = append(incomes, prevIncome)
			prevIncome = prevIncome.Add(decimal.NewFromInt(rng.Int63n(800_000))).Add(dec("0.37"))
		}

		for _, income := range incomes {
			tax, breakdown := ApplyBrackets(income, table)

			sumAmount := decimal.Zero
			sumTax := decimal.Zero
			for _, b := range breakdown {
				assert.True(t, b.Amount.IsPositive(), "%s: breakdown rows carry a positive amount", table.Name)
				sumAmount = sumAmount.Add(b.Amount)
				sumTax = sumTax.Add(b.Tax)
			}

			assert.True(t, sumAmount.Equal(income), "%s: bands must partition %s, got %s", table.Name, income, sumAmount)
			assert.True(t, sumTax.Equal(tax), "%s: band taxes must sum to total at %s", table.Name, income)
			assert.True(t, tax.GreaterThanOrEqual(prevTax), "%s: tax must not decrease at %s", table.Name, income)
			prevTax = tax
		}
	}
}
