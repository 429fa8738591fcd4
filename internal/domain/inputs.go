package domain

import (
	"github.com/shopspring/decimal"
)

// TaxInputs holds one taxpayer's parsed income and deduction figures.
// Monthly fields are annualized by the engine; annual fields are used as-is.
type TaxInputs struct {
	AnnualIncome decimal.Decimal `yaml:"annual_income" json:"annual_income"`

	// Monthly deductions
	PensionMonthly          decimal.Decimal `yaml:"pension_monthly" json:"pension_monthly"`
	VoluntaryPensionMonthly decimal.Decimal `yaml:"voluntary_pension_monthly" json:"voluntary_pension_monthly"`
	HealthMonthly           decimal.Decimal `yaml:"health_monthly" json:"health_monthly"`
	LifeInsuranceMonthly    decimal.Decimal `yaml:"life_insurance_monthly" json:"life_insurance_monthly"`

	// Annual deductions
	RentAnnual                  decimal.Decimal `yaml:"rent_annual" json:"rent_annual"`
	NHFAnnual                   decimal.Decimal `yaml:"nhf_annual" json:"nhf_annual"`
	NHISAnnual                  decimal.Decimal `yaml:"nhis_annual" json:"nhis_annual"`
	OwnerOccupierInterestAnnual decimal.Decimal `yaml:"owner_occupier_interest_annual" json:"owner_occupier_interest_annual"`
}

// InputField pairs a field's wire name with a pointer to its value.
type InputField struct {
	Name  string
	Value *decimal.Decimal
}

// Fields lists every amount in declaration order.
func (in *TaxInputs) Fields() []InputField {
	return []InputField{
		{"annual_income", &in.AnnualIncome},
		{"pension_monthly", &in.PensionMonthly},
		{"voluntary_pension_monthly", &in.VoluntaryPensionMonthly},
		{"health_monthly", &in.HealthMonthly},
		{"life_insurance_monthly", &in.LifeInsuranceMonthly},
		{"rent_annual", &in.RentAnnual},
		{"nhf_annual", &in.NHFAnnual},
		{"nhis_annual", &in.NHISAnnual},
		{"owner_occupier_interest_annual", &in.OwnerOccupierInterestAnnual},
	}
}

// Normalize returns a copy with every negative amount clamped to zero,
// along with the names of the fields that were clamped.
func (in TaxInputs) Normalize() (TaxInputs, []string) {
	out := in
	var clamped []string
	for _, f := range out.Fields() {
		if f.Value.IsNegative() {
			*f.Value = decimal.Zero
			clamped = append(clamped, f.Name)
		}
	}
	return out, clamped
}
