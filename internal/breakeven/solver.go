package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds incomes at which the cheaper regime flips
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new crossover solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// sample is one evaluated income
type sample struct {
	income  decimal.Decimal
	cheaper string
	tax     decimal.Decimal
}

func (s *Solver) evaluate(base domain.TaxInputs, income decimal.Decimal) sample {
	in := base
	in.AnnualIncome = income
	r := s.Engine.Compare(in)
	return sample{income: income, cheaper: r.Cheaper, tax: r.New.TotalTax}
}

// FindCrossovers scans the range at fixed spacing and bisects every
// interval whose end points disagree on the cheaper regime. Points where
// both regimes tie are skipped when looking for a change.
func (s *Solver) FindCrossovers(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	step := req.Step
	if step.IsZero() {
		step = s.Options.Step
	}
	points := req.MaxIncome.Sub(req.MinIncome).Div(step).Ceil().IntPart() + 1
	if s.Options.MaxScanPoints > 0 && points > int64(s.Options.MaxScanPoints) {
		return nil, &BreakEvenError{
			Operation: "find_crossovers",
			Message:   fmt.Sprintf("range needs %d scan points, limit is %d; use a larger step", points, s.Options.MaxScanPoints),
		}
	}

	result := &Result{Request: req, Crossovers: []Crossover{}}
	var last *sample

	for income := req.MinIncome; ; income = decimal.Min(income.Add(step), req.MaxIncome) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := s.evaluate(req.Base, income)
		result.Scanned++
		if result.Scanned == 1 {
			result.AtMin = cur.cheaper
		}

		if cur.cheaper != domain.RegimeEqual {
			if last != nil && last.cheaper != cur.cheaper {
				c, err := s.bisect(ctx, req.Base, *last, cur)
				if err != nil {
					return nil, err
				}
				result.Crossovers = append(result.Crossovers, c)
			}
			last = &cur
		}

		if income.Equal(req.MaxIncome) {
			result.AtMax = cur.cheaper
			break
		}
	}
	return result, nil
}

// bisect narrows [lo, hi] until it is within tolerance and reports the
// midpoint of the final bracket. lo and hi must name different regimes.
func (s *Solver) bisect(ctx context.Context, base domain.TaxInputs, lo, hi sample) (Crossover, error) {
	iterations := 0
	for hi.income.Sub(lo.income).GreaterThan(s.Options.Tolerance) {
		if iterations >= s.Options.MaxIterations {
			return Crossover{}, &BreakEvenError{
				Operation: "bisect",
				Message:   fmt.Sprintf("did not converge after %d iterations", iterations),
			}
		}
		iterations++

		select {
		case <-ctx.Done():
			return Crossover{}, ctx.Err()
		default:
		}

		mid := s.evaluate(base, lo.income.Add(hi.income).Div(two))
		switch mid.cheaper {
		case domain.RegimeEqual:
			return Crossover{
				Income:     mid.income.Round(2),
				Below:      lo.cheaper,
				Above:      hi.cheaper,
				TaxAt:      mid.tax.Round(2),
				Iterations: iterations,
			}, nil
		case lo.cheaper:
			lo = mid
		default:
			hi = mid
		}
	}

	mid := lo.income.Add(hi.income).Div(two).Round(2)
	at := s.evaluate(base, mid)
	return Crossover{
		Income:     mid,
		Below:      lo.cheaper,
		Above:      hi.cheaper,
		TaxAt:      at.tax.Round(2),
		Iterations: iterations,
	}, nil
}
