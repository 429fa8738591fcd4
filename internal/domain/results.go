package domain

import (
	"github.com/shopspring/decimal"
)

// BandResult is the portion of taxable income consumed by one band.
type BandResult struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Rate   decimal.Decimal `yaml:"rate" json:"rate"`
	Tax    decimal.Decimal `yaml:"tax" json:"tax"`
}

// RegimeResult is the outcome of applying one regime to the inputs.
type RegimeResult struct {
	Regime                 string          `yaml:"regime" json:"regime"`
	TaxableIncome          decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	TotalTax               decimal.Decimal `yaml:"total_tax" json:"total_tax"`
	Breakdown              []BandResult    `yaml:"breakdown" json:"breakdown"`
	NetAnnualIncome        decimal.Decimal `yaml:"net_annual_income" json:"net_annual_income"`
	NetMonthlyIncome       decimal.Decimal `yaml:"net_monthly_income" json:"net_monthly_income"`
	TotalDeductionsApplied decimal.Decimal `yaml:"total_deductions_applied" json:"total_deductions_applied"`
	EffectiveRate          decimal.Decimal `yaml:"effective_rate" json:"effective_rate"`
}

// ComparisonResult holds both regimes computed from the same inputs.
type ComparisonResult struct {
	Inputs                    TaxInputs       `yaml:"inputs" json:"inputs"`
	PensionAnnual             decimal.Decimal `yaml:"pension_annual" json:"pension_annual"`
	StatutoryDeductionsAnnual decimal.Decimal `yaml:"statutory_deductions_annual" json:"statutory_deductions_annual"`
	CRA                       decimal.Decimal `yaml:"cra" json:"cra"`
	RentRelief                decimal.Decimal `yaml:"rent_relief" json:"rent_relief"`
	Old                       RegimeResult    `yaml:"old" json:"old"`
	New                       RegimeResult    `yaml:"new" json:"new"`

	// TaxDifference is old tax minus new tax; positive means the new regime is cheaper.
	TaxDifference decimal.Decimal `yaml:"tax_difference" json:"tax_difference"`
	Cheaper       string          `yaml:"cheaper" json:"cheaper"`
}

// CheaperRegime names the regime with the lower tax, or RegimeEqual.
func CheaperRegime(oldTax, newTax decimal.Decimal) string {
	switch oldTax.Cmp(newTax) {
	case 1:
		return RegimeNew
	case -1:
		return RegimeOld
	default:
		return RegimeEqual
	}
}

// Regime returns the named regime result.
func (cr *ComparisonResult) Regime(name string) (RegimeResult, bool) {
	switch name {
	case RegimeOld:
		return cr.Old, true
	case RegimeNew:
		return cr.New, true
	}
	return RegimeResult{}, false
}
