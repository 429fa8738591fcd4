package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/domain"
)

// formLabels follow the order of domain.TaxInputs.Fields
var formLabels = []string{
	"Annual gross income",
	"Pension (monthly)",
	"Voluntary pension (monthly)",
	"Health insurance (monthly)",
	"Life insurance (monthly)",
	"Rent paid (annual)",
	"NHF (annual)",
	"NHIS (annual)",
	"Owner-occupier interest (annual)",
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	// Form state
	inputs  []textinput.Model
	invalid []bool
	focus   int
	label   string

	// Calculation engine and the latest result
	engine *calculation.Engine
	result domain.ComparisonResult

	// Export
	exportFormat string
	status       string

	help help.Model
	err  error
}

// NewModel creates a new application model. exportFormat names the
// formatter used by ctrl+s; empty selects the console report.
func NewModel(engine *calculation.Engine, exportFormat string) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if exportFormat == "" {
		exportFormat = "console"
	}

	inputs := make([]textinput.Model, len(formLabels))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 24
		ti.Width = 20
		ti.Prompt = "₦ "
		inputs[i] = ti
	}
	inputs[0].Focus()

	m := Model{
		currentScene: SceneForm,
		inputs:       inputs,
		invalid:      make([]bool, len(formLabels)),
		engine:       engine,
		exportFormat: exportFormat,
		help:         help.New(),
		width:        100,
		height:       30,
	}
	m.recompute()
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Inputs parses the form. Fields that do not parse count as zero and are
// flagged in invalid.
func (m Model) Inputs() domain.TaxInputs {
	in, _ := m.parseInputs()
	return in
}

func (m Model) parseInputs() (domain.TaxInputs, []bool) {
	var in domain.TaxInputs
	invalid := make([]bool, len(m.inputs))
	for i, f := range in.Fields() {
		d, err := config.ParseAmountStrict(m.inputs[i].Value())
		if err != nil {
			invalid[i] = true
			continue
		}
		*f.Value = d
	}
	return in, invalid
}

// recompute reruns the engine over the current form values
func (m *Model) recompute() {
	in, invalid := m.parseInputs()
	m.invalid = invalid
	m.result = m.engine.Compare(in)
}

// SetInputs replaces the form contents
func (m *Model) SetInputs(in domain.TaxInputs) {
	for i, f := range in.Fields() {
		if f.Value.IsZero() {
			m.inputs[i].SetValue("")
			continue
		}
		m.inputs[i].SetValue(f.Value.String())
	}
	m.recompute()
}

// Result returns the comparison for the current form values
func (m Model) Result() domain.ComparisonResult {
	return m.result
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			continue
		}
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}
