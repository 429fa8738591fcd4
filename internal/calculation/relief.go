package calculation

import (
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// ReliefCalculator computes the regime-specific allowances
type ReliefCalculator struct {
	CRAFloor            decimal.Decimal
	CRAIncomeRate       decimal.Decimal
	CRAProportionalRate decimal.Decimal
	RentReliefRate      decimal.Decimal
	RentReliefCap       decimal.Decimal
}

// NewReliefCalculator creates a relief calculator from the rule set
func NewReliefCalculator(rules domain.TaxRules) *ReliefCalculator {
	return &ReliefCalculator{
		CRAFloor:            rules.CRAFloor,
		CRAIncomeRate:       rules.CRAIncomeRate,
		CRAProportionalRate: rules.CRAProportionalRate,
		RentReliefRate:      rules.RentReliefRate,
		RentReliefCap:       rules.RentReliefCap,
	}
}

// ComputeCRA returns the consolidated relief allowance for the old regime:
// max(floor, incomeRate*gross) + proportionalRate*max(0, gross-pensionAnnual).
func (rc *ReliefCalculator) ComputeCRA(grossIncome, pensionAnnual decimal.Decimal) decimal.Decimal {
	fixed := decimal.Max(rc.CRAFloor, grossIncome.Mul(rc.CRAIncomeRate))
	netOfPension := decimal.Max(decimal.Zero, grossIncome.Sub(pensionAnnual))
	return fixed.Add(netOfPension.Mul(rc.CRAProportionalRate))
}

// ComputeRentRelief returns the new-regime rent relief: min(cap, rate*rent).
func (rc *ReliefCalculator) ComputeRentRelief(annualRent decimal.Decimal) decimal.Decimal {
	return decimal.Min(rc.RentReliefCap, annualRent.Mul(rc.RentReliefRate))
}
