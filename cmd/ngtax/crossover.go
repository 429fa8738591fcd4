package main

import (
	"fmt"

	"github.com/rgehrsitz/ngtax/internal/breakeven"
	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var crossoverCmd = &cobra.Command{
	Use:   "crossover [input-file]",
	Short: "Find incomes where the cheaper regime changes",
	Long: "Holds every deduction fixed (from the input file and amount flags) and\n" +
		"searches an income range for the points where the cheaper regime flips.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _, err := collectInputs(cmd, args)
		if err != nil {
			return err
		}

		rulesFile, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")
		engine, err := loadEngine(rulesFile, calculation.NopLogger{}, false)
		if err != nil {
			return err
		}

		req := breakeven.Request{Base: inputs}
		for flag, dst := range map[string]*decimal.Decimal{
			"from": &req.MinIncome,
			"to":   &req.MaxIncome,
			"step": &req.Step,
		} {
			text, _ := cmd.Flags().GetString(flag)
			d, err := config.ParseAmountStrict(text)
			if err != nil {
				return fmt.Errorf("--%s: %w", flag, err)
			}
			*dst = d
		}

		result, err := breakeven.NewDefaultSolver(engine).FindCrossovers(cmd.Context(), req)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			out, err := (&breakeven.JSONFormatter{}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		case "table", "console", "":
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
		default:
			return fmt.Errorf("unknown format %q (use table or json)", format)
		}
		return nil
	},
}

func init() {
	for _, af := range amountFlags {
		if af.flag == "income" {
			continue
		}
		crossoverCmd.Flags().String(af.flag, "", af.usage)
	}
	crossoverCmd.Flags().String("from", "0", "Lowest income to test")
	crossoverCmd.Flags().String("to", "100000000", "Highest income to test")
	crossoverCmd.Flags().String("step", "", "Scan spacing (default ₦250,000)")
	crossoverCmd.Flags().String("rules", "", "Rules override file (YAML or JSON)")
	crossoverCmd.Flags().StringP("format", "f", "table", "Output format: table or json")

	rootCmd.AddCommand(crossoverCmd)
}
