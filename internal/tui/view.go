package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/rgehrsitz/ngtax/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderForm()
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("NGTAX - Nigeria PIT: Old vs New")
	crumb := m.currentScene.String()
	if m.label != "" {
		crumb += " / " + m.label
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(crumb),
		"",
		content,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, InvalidStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, StatusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(keys))
	return strings.Join(parts, "\n")
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, ti := range m.inputs {
		if i == 0 {
			b.WriteString(SectionStyle.Render("Income") + "\n")
		}
		if i == 1 {
			b.WriteString(SectionStyle.Render("Monthly deductions") + "\n")
		}
		if i == 5 {
			b.WriteString(SectionStyle.Render("Annual deductions") + "\n")
		}

		label := LabelStyle.Render(formLabels[i])
		if i == m.focus {
			label = FocusedLabelStyle.Render(formLabels[i])
		}
		line := label + ti.View()
		if m.invalid[i] {
			line += " " + InvalidStyle.Render("not a number, using 0")
		}
		b.WriteString(line + "\n")
	}

	form := b.String()
	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderRegime(m.result.Old, OldPanelStyle),
		" ",
		m.renderRegime(m.result.New, NewPanelStyle),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		form,
		m.renderReliefs(),
		panels,
		m.renderVerdict(),
	)
}

func (m Model) renderReliefs() string {
	r := m.result
	return fmt.Sprintf("%s %s   %s %s   %s %s\n",
		MetricLabelStyle.Render("Statutory"), output.FormatNaira(r.StatutoryDeductionsAnnual),
		MetricLabelStyle.Render("CRA"), output.FormatNaira(r.CRA),
		MetricLabelStyle.Render("Rent relief"), output.FormatNaira(r.RentRelief))
}

func metric(label, value string) string {
	return MetricLabelStyle.Render(label) + MetricValueStyle.Render(value)
}

func (m Model) renderRegime(r domain.RegimeResult, style lipgloss.Style) string {
	if m.result.Cheaper == r.Regime {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}

	lines := []string{
		TableHeaderStyle.Render(output.RegimeTitle(r.Regime)),
		metric("Taxable", output.FormatNaira(r.TaxableIncome)),
		metric("Total tax", output.FormatNaira(r.TotalTax)),
		metric("Effective", output.FormatRate(r.EffectiveRate)),
		metric("Net annual", output.FormatNaira(r.NetAnnualIncome)),
		metric("Net monthly", output.FormatNaira(r.NetMonthlyIncome)),
		"",
		TableHeaderStyle.Render(fmt.Sprintf("%-16s %6s %12s", "Band", "Rate", "Tax")),
	}
	for _, band := range r.Breakdown {
		lines = append(lines, fmt.Sprintf("%-16s %6s %12s",
			output.FormatNaira(band.Amount), output.FormatRate(band.Rate), output.FormatNaira(band.Tax)))
	}
	if len(r.Breakdown) == 0 {
		lines = append(lines, SubtitleStyle.Render("no taxable income"))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderVerdict() string {
	r := m.result
	if r.Cheaper == domain.RegimeEqual {
		return "Both regimes give the same tax."
	}
	return fmt.Sprintf("Lower tax: %s, saving %s per year.",
		output.RegimeTitle(r.Cheaper), output.FormatNaira(r.TaxDifference.Abs()))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("How it works") + "\n")
	for _, a := range output.DefaultAssumptions {
		b.WriteString("• " + a + "\n")
	}
	b.WriteString("\nAmounts may include commas, spaces or the ₦ sign.\n")
	b.WriteString("Results update as you type. ctrl+s writes a " + m.exportFormat + " report.\n")
	return b.String()
}
