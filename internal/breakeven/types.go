package breakeven

import (
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Request describes an income range to search for crossovers. Every input
// except AnnualIncome is taken from Base.
type Request struct {
	Base      domain.TaxInputs
	MinIncome decimal.Decimal
	MaxIncome decimal.Decimal
	Step      decimal.Decimal // scan spacing; zero uses the solver default
}

// Crossover is an income at which the cheaper regime changes
type Crossover struct {
	Income     decimal.Decimal `json:"income"`
	Below      string          `json:"below"` // cheaper regime just under Income
	Above      string          `json:"above"` // cheaper regime from Income up
	TaxAt      decimal.Decimal `json:"tax_at"`
	Iterations int             `json:"iterations"`
}

// Result lists the crossovers found in a range, lowest income first
type Result struct {
	Request    Request     `json:"-"`
	Crossovers []Crossover `json:"crossovers"`
	Scanned    int         `json:"scanned"`
	// Cheaper regime at MinIncome and MaxIncome
	AtMin string `json:"at_min"`
	AtMax string `json:"at_max"`
}

// SolverOptions configures the scan and bisection
type SolverOptions struct {
	Step          decimal.Decimal // default scan spacing
	Tolerance     decimal.Decimal // bisection stops when the bracket is this narrow
	MaxIterations int             // per crossover
	MaxScanPoints int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Step:          decimal.NewFromInt(250_000),
		Tolerance:     decimal.RequireFromString("0.01"),
		MaxIterations: 100,
		MaxScanPoints: 10_000,
	}
}

// Validate checks that the range is usable
func (r *Request) Validate() error {
	if r.MinIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min income cannot be negative",
		}
	}
	if !r.MaxIncome.GreaterThan(r.MinIncome) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max income must be greater than min income",
		}
	}
	if r.Step.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "step cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from the crossover solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
