package tui

import (
	"github.com/rgehrsitz/ngtax/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Compare"
	case SceneHelp:
		return "Help"
	}
	return "Unknown"
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputsLoadedMsg prefills the form, e.g. from an inputs file
type InputsLoadedMsg struct {
	Inputs domain.TaxInputs
	Label  string
}

// ExportedMsg reports the outcome of writing a report file
type ExportedMsg struct {
	Filename string
	Err      error
}
