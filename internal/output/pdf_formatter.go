package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

var bandColumns = []float64{20, 60, 40, 60}

// pdfText converts UTF-8 text for the standard PDF fonts, which cannot
// encode the naira sign.
func pdfText(s string) string {
	return strings.NewReplacer("₦", "NGN ", "−", "-", "Δ", "Diff").Replace(s)
}

func nairaPDF(amount decimal.Decimal) string {
	return pdfText(FormatNaira(amount))
}

// PDFFormatter renders an A4 report with one band table per regime
type PDFFormatter struct {
	// Now stamps the report; nil uses time.Now.
	Now func() time.Time
}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf    *fpdf.Fpdf
	result *domain.ComparisonResult
}

func (p PDFFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	r := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), result: result}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetCreationDate(now())
	r.pdf.SetTitle("Nigeria Personal Income Tax Comparison", false)

	r.pdf.AddPage()
	r.drawSectionHeader("Nigeria Personal Income Tax Comparison (Old vs New)")

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth, 6, "Annual Gross Income: "+nairaPDF(result.Inputs.AnnualIncome), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	r.drawSubheading("Reliefs and Deductions")
	widths := []float64{100, 80}
	r.drawTableHeader([]string{"Item", "Amount"}, widths, [3]int{0, 51, 102})
	r.drawTableRow([]string{"Statutory deductions", nairaPDF(result.StatutoryDeductionsAnnual)}, widths, false)
	r.drawTableRow([]string{"CRA (old regime)", nairaPDF(result.CRA)}, widths, false)
	r.drawTableRow([]string{"Rent relief (new regime)", nairaPDF(result.RentRelief)}, widths, false)
	r.pdf.Ln(6)

	r.drawRegime("Old Law Detailed Breakdown", result.Old, [3]int{74, 144, 217})
	r.drawRegime("New Law Detailed Breakdown", result.New, [3]int{46, 139, 87})

	r.drawSubheading("Summary")
	r.drawTableHeader([]string{"", "Old", "New"}, []float64{60, 60, 60}, [3]int{0, 51, 102})
	summary := [][]string{
		{"Taxable income", nairaPDF(result.Old.TaxableIncome), nairaPDF(result.New.TaxableIncome)},
		{"Total tax", nairaPDF(result.Old.TotalTax), nairaPDF(result.New.TotalTax)},
		{"Effective rate", FormatRate(result.Old.EffectiveRate), FormatRate(result.New.EffectiveRate)},
		{"Net monthly", nairaPDF(result.Old.NetMonthlyIncome), nairaPDF(result.New.NetMonthlyIncome)},
	}
	for _, row := range summary {
		r.drawTableRow(row, []float64{60, 60, 60}, false)
	}
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(contentWidth, 6, pdfText("Lower tax: "+RegimeTitle(result.Cheaper)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) drawRegime(title string, res domain.RegimeResult, header [3]int) {
	r.drawSubheading(title)
	r.drawTableHeader([]string{"Band", "Band Amount", "Rate (%)", "Tax"}, bandColumns, header)
	for i, b := range res.Breakdown {
		r.drawTableRow([]string{
			strconv.Itoa(i + 1),
			nairaPDF(b.Amount),
			b.Rate.Mul(hundred).StringFixed(2),
			nairaPDF(b.Tax),
		}, bandColumns, false)
	}
	r.drawTableRow([]string{"-", "", "Total Tax", nairaPDF(res.TotalTax)}, bandColumns, true)
	r.drawTableRow([]string{"-", "", "Net Annual", nairaPDF(res.NetAnnualIncome)}, bandColumns, true)
	r.pdf.Ln(6)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *pdfReport) drawSubheading(title string) {
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 7, title, "", 1, "L", false, 0, "")
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64, fill [3]int) {
	r.pdf.SetFillColor(fill[0], fill[1], fill[2])
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
