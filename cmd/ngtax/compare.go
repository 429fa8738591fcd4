package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/compare"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/rgehrsitz/ngtax/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// amountFlags maps command-line flags to input field names
var amountFlags = []struct {
	flag, field, usage string
}{
	{"income", "annual_income", "Annual gross income"},
	{"pension", "pension_monthly", "Monthly pension contribution"},
	{"voluntary-pension", "voluntary_pension_monthly", "Monthly voluntary pension contribution"},
	{"health", "health_monthly", "Monthly health insurance premium"},
	{"life-insurance", "life_insurance_monthly", "Monthly life insurance premium"},
	{"rent", "rent_annual", "Annual rent paid"},
	{"nhf", "nhf_annual", "Annual National Housing Fund contribution"},
	{"nhis", "nhis_annual", "Annual NHIS contribution"},
	{"interest", "owner_occupier_interest_annual", "Annual owner-occupied mortgage interest"},
}

// collectInputs reads the optional input file and applies any amount flags
// on top of it
func collectInputs(cmd *cobra.Command, args []string) (domain.TaxInputs, string, error) {
	var inputs domain.TaxInputs
	label, _ := cmd.Flags().GetString("label")

	if len(args) > 0 {
		file, err := config.NewInputParser().LoadInputsFromFile(args[0])
		if err != nil {
			return domain.TaxInputs{}, "", err
		}
		inputs = file.Inputs
		if label == "" {
			label = file.Label
		}
	}

	fields := make(map[string]domain.InputField)
	for _, f := range inputs.Fields() {
		fields[f.Name] = f
	}
	for _, af := range amountFlags {
		if !cmd.Flags().Changed(af.flag) {
			continue
		}
		text, _ := cmd.Flags().GetString(af.flag)
		d, err := config.ParseAmountStrict(text)
		if err != nil {
			return domain.TaxInputs{}, "", fmt.Errorf("--%s: %w", af.flag, err)
		}
		*fields[af.field].Value = d
	}

	if err := config.NewInputParser().ValidateInputs(&inputs); err != nil {
		return domain.TaxInputs{}, "", err
	}
	return inputs, label, nil
}

// writeReport formats result and writes it to path, or to w when path is
// empty. Binary formats without a path go to a timestamped file.
func writeReport(w io.Writer, format, path string, result *domain.ComparisonResult) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	if path == "" && f.Name() == "pdf" {
		filename, err := output.WriteFormatted(f, result, output.Extension(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(w, "Report written to %s\n", path)
	return nil
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare tax under the old and new regimes",
	Long: "Compare tax under the old and new regimes. Inputs come from a YAML or JSON\n" +
		"file, from amount flags, or both; flags override values from the file.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, label, err := collectInputs(cmd, args)
		if err != nil {
			return err
		}

		debugEnabled, _ := cmd.Flags().GetBool("debug")
		rulesFile, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")

		logger := newSlogLogger(cmd.ErrOrStderr(), debugEnabled)
		engine, err := loadEngine(rulesFile, logger, debugEnabled)
		if err != nil {
			return err
		}

		opts := compare.Options{Logger: logger}
		if save {
			st, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			opts.Store = st
		}

		svc := compare.NewService(engine, opts)
		rec, err := svc.CompareAndSave(cmd.Context(), label, inputs)
		if err != nil {
			return err
		}
		if rec.ID != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved record %s\n", rec.ID)
		}

		return writeReport(cmd.OutOrStdout(), format, outPath, rec.Result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		file, err := parser.LoadInputsFromFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ %s is valid\n", args[0])
		if file.Label != "" {
			fmt.Fprintf(out, "  label: %s\n", file.Label)
		}
		for _, f := range file.Inputs.Fields() {
			if f.Value.IsZero() {
				continue
			}
			fmt.Fprintf(out, "  %-32s %s\n", f.Name, output.FormatNaira(*f.Value))
		}

		rulesFile, _ := cmd.Flags().GetString("rules")
		if rulesFile != "" {
			if _, err := parser.LoadRulesFromFile(rulesFile); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s is valid\n", rulesFile)
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the bracket tables and relief constants in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, _ := cmd.Flags().GetString("rules")
		format, _ := cmd.Flags().GetString("format")

		engine, err := loadEngine(rulesFile, calculation.NopLogger{}, false)
		if err != nil {
			return err
		}
		rules := engine.Rules()

		switch strings.ToLower(format) {
		case "yaml", "yml":
			return writeRulesYAML(cmd.OutOrStdout(), rules)
		case "", "table", "console":
			printRules(cmd.OutOrStdout(), rules)
			return nil
		default:
			return fmt.Errorf("unknown rules format %q (use table or yaml)", format)
		}
	},
}

func printRules(w io.Writer, rules domain.TaxRules) {
	for _, t := range []domain.BracketTable{rules.OldTable, rules.NewTable} {
		fmt.Fprintf(w, "%s\n", output.RegimeTitle(t.Name))
		fmt.Fprintf(w, "  %-20s %8s\n", "Band", "Rate")
		for i, b := range t.Bands {
			width := output.FormatNaira(b.Width)
			if b.Unbounded {
				width = "remainder"
			}
			fmt.Fprintf(w, "  %-20s %8s\n", fmt.Sprintf("%d. %s", i+1, width), output.FormatRate(b.Rate))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Reliefs")
	fmt.Fprintf(w, "  CRA floor:              %s\n", output.FormatNaira(rules.CRAFloor))
	fmt.Fprintf(w, "  CRA income rate:        %s\n", output.FormatRate(rules.CRAIncomeRate))
	fmt.Fprintf(w, "  CRA proportional rate:  %s\n", output.FormatRate(rules.CRAProportionalRate))
	fmt.Fprintf(w, "  Rent relief rate:       %s\n", output.FormatRate(rules.RentReliefRate))
	fmt.Fprintf(w, "  Rent relief cap:        %s\n", output.FormatNaira(rules.RentReliefCap))
}

// writeRulesYAML prints rules in the rules-file format, so the output can
// be edited and passed back with --rules
func writeRulesYAML(w io.Writer, rules domain.TaxRules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}

func init() {
	for _, af := range amountFlags {
		compareCmd.Flags().String(af.flag, "", af.usage)
	}
	compareCmd.Flags().String("label", "", "Label stored with a saved comparison")
	compareCmd.Flags().String("rules", "", "Rules override file (YAML or JSON)")
	compareCmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	compareCmd.Flags().StringP("output", "o", "", "Write the report to this file")
	compareCmd.Flags().Bool("save", false, "Save the comparison to the record database")
	compareCmd.Flags().Bool("debug", false, "Log intermediate figures to stderr")
	addStoreFlags(compareCmd)

	validateCmd.Flags().String("rules", "", "Also validate this rules override file")

	rulesCmd.Flags().String("rules", "", "Rules override file (YAML or JSON)")
	rulesCmd.Flags().StringP("format", "f", "table", "Output format: table or yaml")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
}
