package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE SCHEDULE ASSUMPTIONS:
//
// 1. Old regime (PITA as amended, CRA-based):
//    7% / 11% / 15% / 19% / 21% on the first 300k / 300k / 500k / 500k / 1.6m,
//    24% on everything above.
//
// 2. New regime (rent-relief based):
//    0% / 15% / 18% / 21% / 23% on the first 800k / 2.2m / 9m / 13m / 25m,
//    25% on everything above.
//
// 3. CRA: greater of 200,000 or 1% of gross, plus 20% of gross net of pension.
//
// 4. Rent relief: 20% of annual rent, capped at 500,000.

func band(width int64, rate string) domain.Band {
	return domain.Band{Width: decimal.NewFromInt(width), Rate: decimal.RequireFromString(rate)}
}

func topBand(rate string) domain.Band {
	return domain.Band{Rate: decimal.RequireFromString(rate), Unbounded: true}
}

// OldRegimeTable returns the old-regime schedule. Each call returns a fresh copy.
func OldRegimeTable() domain.BracketTable {
	return domain.BracketTable{
		Name: domain.RegimeOld,
		Bands: []domain.Band{
			band(300_000, "0.07"),
			band(300_000, "0.11"),
			band(500_000, "0.15"),
			band(500_000, "0.19"),
			band(1_600_000, "0.21"),
			topBand("0.24"),
		},
	}
}

// NewRegimeTable returns the new-regime schedule. Each call returns a fresh copy.
func NewRegimeTable() domain.BracketTable {
	return domain.BracketTable{
		Name: domain.RegimeNew,
		Bands: []domain.Band{
			band(800_000, "0.00"),
			band(2_200_000, "0.15"),
			band(9_000_000, "0.18"),
			band(13_000_000, "0.21"),
			band(25_000_000, "0.23"),
			topBand("0.25"),
		},
	}
}

// DefaultRules returns the built-in rule set.
func DefaultRules() domain.TaxRules {
	return domain.TaxRules{
		OldTable:            OldRegimeTable(),
		NewTable:            NewRegimeTable(),
		CRAFloor:            decimal.NewFromInt(200_000),
		CRAIncomeRate:       decimal.RequireFromString("0.01"),
		CRAProportionalRate: decimal.RequireFromString("0.20"),
		RentReliefRate:      decimal.RequireFromString("0.20"),
		RentReliefCap:       decimal.NewFromInt(500_000),
		MonthsPerYear:       12,
	}
}

// MustValidateRules panics if rules are malformed. Used for built-in
// schedules, where a bad table is a programming defect.
func MustValidateRules(rules domain.TaxRules) {
	if err := rules.Validate(); err != nil {
		panic(fmt.Sprintf("invalid built-in tax rules: %v", err))
	}
}

func init() {
	MustValidateRules(DefaultRules())
}
