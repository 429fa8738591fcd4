package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:          "ngtax-tui [input-file]",
	Short:        "Interactive old vs new regime tax comparison",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")

		parser := config.NewInputParser()
		engine := calculation.NewEngine()
		if rulesFile != "" {
			rules, err := parser.LoadRulesFromFile(rulesFile)
			if err != nil {
				return err
			}
			if engine, err = calculation.NewEngineWithRules(rules); err != nil {
				return err
			}
		}

		var loaded *config.InputFile
		if len(args) > 0 {
			file, err := parser.LoadInputsFromFile(args[0])
			if err != nil {
				return err
			}
			loaded = file
		}

		// Create the Bubble Tea program
		p := tea.NewProgram(tui.NewModel(engine, format), tea.WithAltScreen())
		if loaded != nil {
			go p.Send(tui.InputsLoadedMsg{Inputs: loaded.Inputs, Label: loaded.Label})
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().String("rules", "", "Rules override file (YAML or JSON)")
	rootCmd.Flags().StringP("format", "f", "console", "Report format written by ctrl+s")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
