package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/ngtax/internal/domain"
)

// HTMLFormatter produces a standalone HTML report. PDFLink, when set, adds a
// download link for the PDF rendition of the same result.
type HTMLFormatter struct {
	PDFLink string
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"naira": FormatNaira,
	"rate":  FormatRate,
	"title": RegimeTitle,
	"inc":   func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ComparisonResult
		Regimes     []domain.RegimeResult
		Assumptions []string
		PDFLink     string
	}{result, []domain.RegimeResult{result.Old, result.New}, DefaultAssumptions, h.PDFLink}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
