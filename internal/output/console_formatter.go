package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ngtax/internal/domain"
)

// ConsoleFormatter renders the full comparison with both band breakdowns
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	in := result.Inputs

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "NIGERIA PERSONAL INCOME TAX COMPARISON (OLD vs NEW)")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Annual Gross Income: %s\n", FormatNaira(in.AnnualIncome))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "DEDUCTIONS")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	field(&buf, "Pension (monthly)", FormatNaira(in.PensionMonthly))
	field(&buf, "Voluntary pension (monthly)", FormatNaira(in.VoluntaryPensionMonthly))
	field(&buf, "Health (monthly)", FormatNaira(in.HealthMonthly))
	field(&buf, "Life insurance (monthly)", FormatNaira(in.LifeInsuranceMonthly))
	field(&buf, "NHF (annual)", FormatNaira(in.NHFAnnual))
	field(&buf, "NHIS (annual)", FormatNaira(in.NHISAnnual))
	field(&buf, "Owner-occupier interest", FormatNaira(in.OwnerOccupierInterestAnnual))
	field(&buf, "Rent (annual)", FormatNaira(in.RentAnnual))
	fmt.Fprintln(&buf)
	field(&buf, "Statutory deductions", FormatNaira(result.StatutoryDeductionsAnnual))
	field(&buf, "CRA (old regime)", FormatNaira(result.CRA))
	field(&buf, "Rent relief (new regime)", FormatNaira(result.RentRelief))
	fmt.Fprintln(&buf)

	writeRegime(&buf, result.Old)
	writeRegime(&buf, result.New)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	field(&buf, "Old regime tax", FormatNaira(result.Old.TotalTax))
	field(&buf, "New regime tax", FormatNaira(result.New.TotalTax))
	field(&buf, "Difference (old - new)", FormatNaira(result.TaxDifference))
	field(&buf, "Lower tax", RegimeTitle(result.Cheaper))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, r domain.RegimeResult) {
	fmt.Fprintln(buf, strings.ToUpper(RegimeTitle(r.Regime)))
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "  %-24s %10s %20s\n", "Band Amount", "Rate", "Tax")
	for _, b := range r.Breakdown {
		fmt.Fprintf(buf, "  %-24s %10s %20s\n", FormatNaira(b.Amount), FormatRate(b.Rate), FormatNaira(b.Tax))
	}
	if len(r.Breakdown) == 0 {
		fmt.Fprintln(buf, "  (no taxable income)")
	}
	fmt.Fprintln(buf)
	field(buf, "Total deductions applied", FormatNaira(r.TotalDeductionsApplied))
	field(buf, "Taxable income", FormatNaira(r.TaxableIncome))
	field(buf, "Total tax", FormatNaira(r.TotalTax))
	field(buf, "Effective rate", FormatRate(r.EffectiveRate))
	field(buf, "Net annual income", FormatNaira(r.NetAnnualIncome))
	field(buf, "Net monthly income", FormatNaira(r.NetMonthlyIncome))
	fmt.Fprintln(buf)
}

func field(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-30s %s\n", label+":", value)
}

// ConsoleLiteFormatter renders a short side-by-side summary
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAX REGIME SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "%-20s %18s %18s\n", "", "Old", "New")
	row := func(label string, oldV, newV string) {
		fmt.Fprintf(&buf, "%-20s %18s %18s\n", label, oldV, newV)
	}
	row("Taxable income", FormatNaira(result.Old.TaxableIncome), FormatNaira(result.New.TaxableIncome))
	row("Total tax", FormatNaira(result.Old.TotalTax), FormatNaira(result.New.TotalTax))
	row("Net annual", FormatNaira(result.Old.NetAnnualIncome), FormatNaira(result.New.NetAnnualIncome))
	row("Net monthly", FormatNaira(result.Old.NetMonthlyIncome), FormatNaira(result.New.NetMonthlyIncome))
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "Lower tax: %s (Δ %s)\n", RegimeTitle(result.Cheaper), FormatNaira(result.TaxDifference.Abs()))
	return buf.Bytes(), nil
}
