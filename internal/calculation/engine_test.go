package calculation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInputs() domain.TaxInputs {
	return domain.TaxInputs{
		AnnualIncome:   dec("6000000"),
		PensionMonthly: dec("50000"),
		RentAnnual:     dec("1200000"),
	}
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Deductions, "Should initialize deduction aggregator")
	assert.NotNil(t, engine.Relief, "Should initialize relief calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_Compare_Scenario(t *testing.T) {
	result := NewEngine().Compare(scenarioInputs())

	assert.True(t, result.PensionAnnual.Equal(dec("600000")))
	assert.True(t, result.StatutoryDeductionsAnnual.Equal(dec("600000")))
	assert.True(t, result.CRA.Equal(dec("1280000")), "cra %s", result.CRA)
	assert.True(t, result.RentRelief.Equal(dec("240000")), "rent relief %s", result.RentRelief)

	// Old regime
	assert.Equal(t, domain.RegimeOld, result.Old.Regime)
	assert.True(t, result.Old.TaxableIncome.Equal(dec("4120000")), "taxable old %s", result.Old.TaxableIncome)
	assert.True(t, result.Old.TotalTax.Equal(dec("780800")), "tax old %s", result.Old.TotalTax)
	assert.True(t, result.Old.NetAnnualIncome.Equal(dec("5219200")))
	assert.True(t, result.Old.TotalDeductionsApplied.Equal(dec("1880000")))
	assert.Len(t, result.Old.Breakdown, 6)
	monthly := result.Old.NetMonthlyIncome.Mul(decimal.NewFromInt(12))
	assert.True(t, monthly.Sub(dec("5219200")).Abs().LessThan(dec("0.000001")), "monthly old %s", result.Old.NetMonthlyIncome)

	// New regime
	assert.Equal(t, domain.RegimeNew, result.New.Regime)
	assert.True(t, result.New.TaxableIncome.Equal(dec("5160000")), "taxable new %s", result.New.TaxableIncome)
	assert.True(t, result.New.TotalTax.Equal(dec("718800")), "tax new %s", result.New.TotalTax)
	assert.True(t, result.New.NetAnnualIncome.Equal(dec("5281200")))
	assert.True(t, result.New.NetMonthlyIncome.Equal(dec("440100")))
	assert.True(t, result.New.TotalDeductionsApplied.Equal(dec("840000")))
	assert.Len(t, result.New.Breakdown, 3)

	assert.True(t, result.TaxDifference.Equal(dec("62000")))
	assert.Equal(t, domain.RegimeNew, result.Cheaper)
}

func TestEngine_Compare_ZeroIncome(t *testing.T) {
	result := NewEngine().Compare(domain.TaxInputs{})

	assert.True(t, result.CRA.Equal(dec("200000")), "CRA floor applies at zero income")
	assert.True(t, result.Old.TotalTax.IsZero())
	assert.True(t, result.New.TotalTax.IsZero())
	assert.Empty(t, result.Old.Breakdown)
	assert.Empty(t, result.New.Breakdown)
	assert.True(t, result.Old.NetMonthlyIncome.IsZero())
	assert.True(t, result.New.NetMonthlyIncome.IsZero())
	assert.True(t, result.Old.EffectiveRate.IsZero())
	assert.Equal(t, "equal", result.Cheaper)
}

func TestEngine_Compare_DeductionsExceedIncome(t *testing.T) {
	result := NewEngine().Compare(domain.TaxInputs{
		AnnualIncome:   dec("1000000"),
		PensionMonthly: dec("200000"),
	})

	assert.True(t, result.Old.TaxableIncome.IsZero(), "taxable income is floored at zero")
	assert.True(t, result.New.TaxableIncome.IsZero())
	assert.True(t, result.Old.NetAnnualIncome.Equal(dec("1000000")))
}

func TestEngine_Compare_ClampsNegatives(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	in := scenarioInputs()
	in.HealthMonthly = dec("-100")
	result := engine.Compare(in)

	assert.True(t, result.Inputs.HealthMonthly.IsZero(), "echoed inputs are the normalized values")
	assert.True(t, result.Old.TotalTax.Equal(dec("780800")), "clamped field behaves like zero")
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "WARN")
	assert.Contains(t, logger.messages[0], "health_monthly")
}

func TestEngine_Compare_Idempotent(t *testing.T) {
	engine := NewEngine()
	in := scenarioInputs()
	in.LifeInsuranceMonthly = dec("1234.56")

	first := engine.Compare(in)
	second := engine.Compare(in)

	assert.Equal(t, first, second, "identical inputs must give identical results")
}

func TestEngine_Compare_Concurrent(t *testing.T) {
	engine := NewEngine()
	want := engine.Compare(scenarioInputs())

	var wg sync.WaitGroup
	results := make([]domain.ComparisonResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Compare(scenarioInputs())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.True(t, got.Old.TotalTax.Equal(want.Old.TotalTax), "goroutine %d old tax", i)
		assert.True(t, got.New.TotalTax.Equal(want.New.TotalTax), "goroutine %d new tax", i)
	}
}

func TestEngine_DebugLogging(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	engine.Compare(scenarioInputs())

	assert.Len(t, logger.messages, 3)
	for _, m := range logger.messages {
		assert.Contains(t, m, "DEBUG")
	}
}

func TestNewEngineWithRules(t *testing.T) {
	rules := DefaultRules()
	rules.RentReliefCap = dec("100000")

	engine, err := NewEngineWithRules(rules)
	require.NoError(t, err)

	result := engine.Compare(scenarioInputs())
	assert.True(t, result.RentRelief.Equal(dec("100000")))

	// Mutating the caller's copy must not reach the engine.
	rules.NewTable.Bands[0].Rate = dec("0.5")
	assert.True(t, engine.Rules().NewTable.Bands[0].Rate.IsZero())
}

func TestNewEngineWithRules_Invalid(t *testing.T) {
	rules := DefaultRules()
	rules.OldTable.Bands = rules.OldTable.Bands[:3]

	engine, err := NewEngineWithRules(rules)

	assert.Nil(t, engine)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "final band must be unbounded")
}

func TestDefaultRules_FreshCopies(t *testing.T) {
	a := DefaultRules()
	a.OldTable.Bands[0].Rate = dec("0.99")

	b := DefaultRules()
	assert.True(t, b.OldTable.Bands[0].Rate.Equal(dec("0.07")), "default tables must not be shared")
}

func TestMustValidateRules_Panics(t *testing.T) {
	rules := DefaultRules()
	rules.MonthsPerYear = 0

	assert.Panics(t, func() { MustValidateRules(rules) })
	assert.NotPanics(t, func() { MustValidateRules(DefaultRules()) })
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(level, format string, args ...any) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, level+": "+fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Debugf(format string, args ...any) { tl.record("DEBUG", format, args...) }
func (tl *TestLogger) Infof(format string, args ...any)  { tl.record("INFO", format, args...) }
func (tl *TestLogger) Warnf(format string, args ...any)  { tl.record("WARN", format, args...) }
func (tl *TestLogger) Errorf(format string, args ...any) { tl.record("ERROR", format, args...) }
