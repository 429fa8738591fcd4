package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func validTable() BracketTable {
	return BracketTable{
		Name: "test",
		Bands: []Band{
			{Width: d(100), Rate: decimal.NewFromFloat(0.1)},
			{Width: d(200), Rate: decimal.NewFromFloat(0.2)},
			{Rate: decimal.NewFromFloat(0.3), Unbounded: true},
		},
	}
}

func TestBracketTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BracketTable)
		wantErr string
	}{
		{"valid", func(*BracketTable) {}, ""},
		{"empty", func(bt *BracketTable) { bt.Bands = nil }, "has no bands"},
		{"unbounded not last", func(bt *BracketTable) { bt.Bands[0].Unbounded = true }, "unbounded but not last"},
		{"final bounded", func(bt *BracketTable) { bt.Bands[2].Unbounded = false }, "final band must be unbounded"},
		{"negative width", func(bt *BracketTable) { bt.Bands[1].Width = d(-1) }, "width cannot be negative"},
		{"rate above one", func(bt *BracketTable) { bt.Bands[1].Rate = decimal.NewFromFloat(1.5) }, "rate must be between 0 and 1"},
		{"negative rate", func(bt *BracketTable) { bt.Bands[2].Rate = decimal.NewFromFloat(-0.1) }, "rate must be between 0 and 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt := validTable()
			tt.mutate(&bt)
			err := bt.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBracketTable_CloneDoesNotAlias(t *testing.T) {
	bt := validTable()
	clone := bt.Clone()
	clone.Bands[0].Rate = decimal.NewFromFloat(0.9)

	assert.True(t, bt.Bands[0].Rate.Equal(decimal.NewFromFloat(0.1)), "original must be untouched")
}

func TestTaxRules_Validate(t *testing.T) {
	rules := TaxRules{
		OldTable:       validTable(),
		NewTable:       validTable(),
		CRAFloor:       d(200000),
		RentReliefCap:  d(500000),
		RentReliefRate: decimal.NewFromFloat(0.2),
		MonthsPerYear:  12,
	}
	require.NoError(t, rules.Validate())

	bad := rules.Clone()
	bad.NewTable.Bands = bad.NewTable.Bands[:2]
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new regime")

	bad = rules.Clone()
	bad.MonthsPerYear = 0
	assert.Error(t, bad.Validate())

	bad = rules.Clone()
	bad.RentReliefCap = d(-5)
	assert.Error(t, bad.Validate())
}

func TestTaxInputs_Normalize(t *testing.T) {
	in := TaxInputs{
		AnnualIncome:   d(1000000),
		PensionMonthly: d(-50),
		RentAnnual:     d(-1),
		NHFAnnual:      d(10),
	}

	out, clamped := in.Normalize()

	assert.Equal(t, []string{"pension_monthly", "rent_annual"}, clamped)
	assert.True(t, out.PensionMonthly.IsZero())
	assert.True(t, out.RentAnnual.IsZero())
	assert.True(t, out.NHFAnnual.Equal(d(10)))
	assert.True(t, in.PensionMonthly.Equal(d(-50)), "receiver must not be modified")
}

func TestTaxInputs_NormalizeNoop(t *testing.T) {
	in := TaxInputs{AnnualIncome: d(5)}
	_, clamped := in.Normalize()
	assert.Empty(t, clamped)
}

func TestCheaperRegime(t *testing.T) {
	assert.Equal(t, RegimeNew, CheaperRegime(d(10), d(5)))
	assert.Equal(t, RegimeOld, CheaperRegime(d(5), d(10)))
	assert.Equal(t, "equal", CheaperRegime(d(5), d(5)))
}

func TestComparisonResult_Regime(t *testing.T) {
	cr := &ComparisonResult{
		Old: RegimeResult{Regime: RegimeOld},
		New: RegimeResult{Regime: RegimeNew},
	}
	r, ok := cr.Regime(RegimeOld)
	assert.True(t, ok)
	assert.Equal(t, RegimeOld, r.Regime)

	_, ok = cr.Regime("future")
	assert.False(t, ok)
}
