package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

// Prints old and new regime tax as CSV for a range of incomes, holding the
// other inputs from a file fixed. Useful for spotting where the cheaper
// regime flips.
func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: regime_sweep <input-file> <from> <to> [step]")
		return
	}
	p := config.NewInputParser()
	file, err := p.LoadInputsFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	from := mustAmount(os.Args[2])
	to := mustAmount(os.Args[3])
	step := decimal.NewFromInt(500_000)
	if len(os.Args) > 4 {
		step = mustAmount(os.Args[4])
	}
	if !step.IsPositive() {
		fmt.Println("step must be positive")
		return
	}

	engine := calculation.NewEngine()
	fmt.Println("Income,Taxable_Old,Tax_Old,Taxable_New,Tax_New,Difference,Cheaper")

	prev := ""
	for income := from; income.LessThanOrEqual(to); income = income.Add(step) {
		in := file.Inputs
		in.AnnualIncome = income
		r := engine.Compare(in)
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s\n",
			income.StringFixed(0),
			r.Old.TaxableIncome.StringFixed(2), r.Old.TotalTax.StringFixed(2),
			r.New.TaxableIncome.StringFixed(2), r.New.TotalTax.StringFixed(2),
			r.TaxDifference.StringFixed(2), r.Cheaper)
		if prev != "" && prev != r.Cheaper && r.Cheaper != domain.RegimeEqual {
			fmt.Fprintf(os.Stderr, "cheaper regime changes to %s at %s\n", r.Cheaper, income.StringFixed(0))
		}
		if r.Cheaper != domain.RegimeEqual {
			prev = r.Cheaper
		}
	}
}

func mustAmount(s string) decimal.Decimal {
	d, err := config.ParseAmountStrict(s)
	if err != nil {
		panic(err)
	}
	return d
}
