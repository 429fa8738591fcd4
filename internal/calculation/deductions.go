package calculation

import (
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionAggregator annualizes monthly deductions and sums the statutory
// deductions shared by both regimes.
type DeductionAggregator struct {
	MonthsPerYear decimal.Decimal
}

// NewDeductionAggregator creates an aggregator from the rule set
func NewDeductionAggregator(rules domain.TaxRules) *DeductionAggregator {
	return &DeductionAggregator{MonthsPerYear: decimal.NewFromInt(int64(rules.MonthsPerYear))}
}

// Annualize converts a monthly figure to an annual one
func (da *DeductionAggregator) Annualize(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(da.MonthsPerYear)
}

// Aggregate returns the annual pension contribution and the statutory total.
// Rent is excluded; it only feeds the new regime through rent relief.
// Inputs are expected to be normalized (no negative amounts).
func (da *DeductionAggregator) Aggregate(in domain.TaxInputs) (pensionAnnual, statutoryTotal decimal.Decimal) {
	pensionAnnual = da.Annualize(in.PensionMonthly)

	statutoryTotal = decimal.Sum(
		pensionAnnual,
		da.Annualize(in.VoluntaryPensionMonthly),
		da.Annualize(in.HealthMonthly),
		da.Annualize(in.LifeInsuranceMonthly),
		in.NHFAnnual,
		in.NHISAnnual,
		in.OwnerOccupierInterestAnnual,
	)
	return pensionAnnual, statutoryTotal
}
