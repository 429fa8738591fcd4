package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine computes old- and new-regime results side by side. It holds only
// read-only rules after construction and is safe for concurrent use.
type Engine struct {
	rules        domain.TaxRules
	monthsInYear decimal.Decimal
	Deductions   *DeductionAggregator
	Relief       *ReliefCalculator
	Logger       Logger
	Debug        bool // Enable debug output for detailed calculations
}

// NewEngine creates an engine using the built-in rules
func NewEngine() *Engine {
	rules := DefaultRules()
	return newEngine(rules)
}

// NewEngineWithRules creates an engine with a caller-supplied rule set.
// Unlike the built-in schedules, supplied rules are validated and rejected
// with an error rather than a panic.
func NewEngineWithRules(rules domain.TaxRules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tax rules: %w", err)
	}
	return newEngine(rules.Clone()), nil
}

func newEngine(rules domain.TaxRules) *Engine {
	return &Engine{
		rules:        rules,
		Deductions:   NewDeductionAggregator(rules),
		Relief:       NewReliefCalculator(rules),
		Logger:       NopLogger{},
		monthsInYear: decimal.NewFromInt(int64(rules.MonthsPerYear)),
	}
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Rules returns a copy of the rule set in use
func (e *Engine) Rules() domain.TaxRules {
	return e.rules.Clone()
}

// Compare runs both regimes over the same inputs. Negative amounts are
// clamped to zero (and logged); the engine itself never fails.
func (e *Engine) Compare(raw domain.TaxInputs) domain.ComparisonResult {
	inputs, clamped := raw.Normalize()
	for _, name := range clamped {
		e.Logger.Warnf("clamped negative %s to zero", name)
	}

	income := inputs.AnnualIncome
	pensionAnnual, statutory := e.Deductions.Aggregate(inputs)

	cra := e.Relief.ComputeCRA(income, pensionAnnual)
	oldResult := e.applyRegime(domain.RegimeOld, income, statutory, cra, e.rules.OldTable)

	rentRelief := e.Relief.ComputeRentRelief(inputs.RentAnnual)
	newResult := e.applyRegime(domain.RegimeNew, income, statutory, rentRelief, e.rules.NewTable)

	if e.Debug {
		e.Logger.Debugf("income=%s pension=%s statutory=%s cra=%s rent_relief=%s",
			income, pensionAnnual, statutory, cra, rentRelief)
		e.Logger.Debugf("old: taxable=%s tax=%s bands=%d", oldResult.TaxableIncome, oldResult.TotalTax, len(oldResult.Breakdown))
		e.Logger.Debugf("new: taxable=%s tax=%s bands=%d", newResult.TaxableIncome, newResult.TotalTax, len(newResult.Breakdown))
	}

	return domain.ComparisonResult{
		Inputs:                    inputs,
		PensionAnnual:             pensionAnnual,
		StatutoryDeductionsAnnual: statutory,
		CRA:                       cra,
		RentRelief:                rentRelief,
		Old:                       oldResult,
		New:                       newResult,
		TaxDifference:             oldResult.TotalTax.Sub(newResult.TotalTax),
		Cheaper:                   domain.CheaperRegime(oldResult.TotalTax, newResult.TotalTax),
	}
}

// applyRegime computes taxable income, tax and net income for one regime
func (e *Engine) applyRegime(name string, income, statutory, relief decimal.Decimal, table domain.BracketTable) domain.RegimeResult {
	taxable := decimal.Max(decimal.Zero, income.Sub(statutory).Sub(relief))
	totalTax, breakdown := ApplyBrackets(taxable, table)

	netAnnual := income.Sub(totalTax)
	netMonthly := decimal.Zero
	effective := decimal.Zero
	if income.IsPositive() {
		netMonthly = netAnnual.Div(e.monthsInYear)
		effective = totalTax.Div(income)
	}

	return domain.RegimeResult{
		Regime:                 name,
		TaxableIncome:          taxable,
		TotalTax:               totalTax,
		Breakdown:              breakdown,
		NetAnnualIncome:        netAnnual,
		NetMonthlyIncome:       netMonthly,
		TotalDeductionsApplied: statutory.Add(relief),
		EffectiveRate:          effective,
	}
}
