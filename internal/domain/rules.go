package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime names. RegimeEqual is reported when both regimes cost the same.
const (
	RegimeOld   = "old"
	RegimeNew   = "new"
	RegimeEqual = "equal"
)

// Band is one slice of a bracket schedule. An unbounded band absorbs whatever
// income is left when it is reached; its Width is ignored.
type Band struct {
	Width     decimal.Decimal `yaml:"width" json:"width"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
}

// BracketTable is an ordered band schedule. Income is consumed band by band
// in declaration order.
type BracketTable struct {
	Name  string `yaml:"name" json:"name"`
	Bands []Band `yaml:"bands" json:"bands"`
}

// Validate checks that exactly one band is unbounded and that it is last,
// that widths are non-negative and that rates lie in [0, 1].
func (bt BracketTable) Validate() error {
	if len(bt.Bands) == 0 {
		return fmt.Errorf("bracket table %q has no bands", bt.Name)
	}
	one := decimal.NewFromInt(1)
	for i, b := range bt.Bands {
		last := i == len(bt.Bands)-1
		if b.Unbounded && !last {
			return fmt.Errorf("bracket table %q: band %d is unbounded but not last", bt.Name, i)
		}
		if last && !b.Unbounded {
			return fmt.Errorf("bracket table %q: final band must be unbounded", bt.Name)
		}
		if !b.Unbounded && b.Width.IsNegative() {
			return fmt.Errorf("bracket table %q: band %d width cannot be negative", bt.Name, i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket table %q: band %d rate must be between 0 and 1", bt.Name, i)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can never alias a shared schedule.
func (bt BracketTable) Clone() BracketTable {
	bands := make([]Band, len(bt.Bands))
	copy(bands, bt.Bands)
	return BracketTable{Name: bt.Name, Bands: bands}
}

// TaxRules is the complete rule set for both regimes.
type TaxRules struct {
	OldTable BracketTable `yaml:"old_table" json:"old_table"`
	NewTable BracketTable `yaml:"new_table" json:"new_table"`

	// Consolidated relief allowance (old regime)
	CRAFloor            decimal.Decimal `yaml:"cra_floor" json:"cra_floor"`
	CRAIncomeRate       decimal.Decimal `yaml:"cra_income_rate" json:"cra_income_rate"`
	CRAProportionalRate decimal.Decimal `yaml:"cra_proportional_rate" json:"cra_proportional_rate"`

	// Rent relief (new regime)
	RentReliefRate decimal.Decimal `yaml:"rent_relief_rate" json:"rent_relief_rate"`
	RentReliefCap  decimal.Decimal `yaml:"rent_relief_cap" json:"rent_relief_cap"`

	MonthsPerYear int `yaml:"months_per_year" json:"months_per_year"`
}

// Validate checks both tables and the relief constants.
func (r TaxRules) Validate() error {
	if err := r.OldTable.Validate(); err != nil {
		return fmt.Errorf("old regime: %w", err)
	}
	if err := r.NewTable.Validate(); err != nil {
		return fmt.Errorf("new regime: %w", err)
	}
	if r.CRAFloor.IsNegative() {
		return fmt.Errorf("CRA floor cannot be negative")
	}
	if r.CRAIncomeRate.IsNegative() || r.CRAProportionalRate.IsNegative() {
		return fmt.Errorf("CRA rates cannot be negative")
	}
	if r.RentReliefRate.IsNegative() {
		return fmt.Errorf("rent relief rate cannot be negative")
	}
	if r.RentReliefCap.IsNegative() {
		return fmt.Errorf("rent relief cap cannot be negative")
	}
	if r.MonthsPerYear <= 0 {
		return fmt.Errorf("months per year must be positive")
	}
	return nil
}

// Clone returns a deep copy of the rules.
func (r TaxRules) Clone() TaxRules {
	out := r
	out.OldTable = r.OldTable.Clone()
	out.NewTable = r.NewTable.Clone()
	return out
}
