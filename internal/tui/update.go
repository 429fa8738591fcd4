package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/rgehrsitz/ngtax/internal/output"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	// Custom messages
	case InputsLoadedMsg:
		m.SetInputs(msg.Inputs)
		m.label = msg.Label
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.status = ""
		} else {
			m.err = nil
			m.status = "Report written to " + msg.Filename
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleKeyPress processes global shortcuts before the focused input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.currentScene == SceneHelp && msg.String() != "ctrl+c" {
			m.currentScene = SceneForm
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		if m.currentScene == SceneHelp {
			m.currentScene = SceneForm
		} else {
			m.currentScene = SceneHelp
		}
		m.help.ShowAll = m.currentScene == SceneHelp
		return m, nil
	}

	if m.currentScene == SceneHelp {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Prev):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Clear):
		m.inputs[m.focus].SetValue("")
		m.recompute()
		return m, nil

	case key.Matches(msg, keys.Export):
		m.status = "Exporting..."
		return m, exportCmd(m.exportFormat, m.result)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to the focused input and recomputes
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.recompute()
		m.status = ""
	}
	return m, cmd
}

// exportCmd writes the result with the named formatter
func exportCmd(format string, result domain.ComparisonResult) tea.Cmd {
	return func() tea.Msg {
		f := output.GetFormatterByName(format)
		if f == nil {
			return ExportedMsg{Err: fmt.Errorf("unknown export format %q", format)}
		}
		filename, err := output.WriteFormatted(f, &result, output.Extension(f))
		return ExportedMsg{Filename: filename, Err: err}
	}
}
