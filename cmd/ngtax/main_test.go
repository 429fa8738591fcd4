package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ngtax/internal/domain"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func scenarioFlags() []string {
	return []string{"--income", "6,000,000", "--pension", "50000", "--rent", "1200000"}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "ngtax", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "compare")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"compare", "crossover", "validate", "rules", "history", "show", "serve", "version"}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, name := range expected {
		assert.Contains(t, names, name)
	}
}

func TestCompare_Flags(t *testing.T) {
	out, _, err := execute(t, append([]string{"compare"}, scenarioFlags()...)...)

	require.NoError(t, err)
	assert.Contains(t, out, "NIGERIA PERSONAL INCOME TAX COMPARISON")
	assert.Contains(t, out, "₦780,800.00")
	assert.Contains(t, out, "₦718,800.00")
}

func TestCompare_JSON(t *testing.T) {
	out, _, err := execute(t, append([]string{"compare", "--format", "json"}, scenarioFlags()...)...)
	require.NoError(t, err)

	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.CRA.Equal(decimal.NewFromInt(1_280_000)))
	assert.True(t, result.Old.TotalTax.Equal(decimal.NewFromInt(780_800)))
	assert.True(t, result.New.TotalTax.Equal(decimal.NewFromInt(718_800)))
	assert.Equal(t, domain.RegimeNew, result.Cheaper)
}

func TestCompare_FileWithOverride(t *testing.T) {
	path := writeFile(t, "inputs.yaml", `
label: base
annual_income: "6000000"
pension_monthly: "50000"
rent_annual: "600000"
`)

	out, _, err := execute(t, "compare", path, "--rent", "1200000", "--format", "json")
	require.NoError(t, err)

	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Inputs.RentAnnual.Equal(decimal.NewFromInt(1_200_000)), "flag overrides file")
	assert.True(t, result.New.TotalTax.Equal(decimal.NewFromInt(718_800)))
}

func TestCompare_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	out, _, err := execute(t, append([]string{"compare", "-f", "csv", "-o", path}, scenarioFlags()...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Regime,Row,Amount,Rate,Tax")
}

func TestCompare_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad amount", []string{"compare", "--income", "lots"}, "--income"},
		{"negative amount", []string{"compare", "--income", "-5"}, "cannot be negative"},
		{"unknown format", []string{"compare", "--income", "100", "--format", "docx"}, "unknown format"},
		{"missing file", []string{"compare", "nope.yaml"}, "failed to read file"},
		{"missing rules", []string{"compare", "--income", "100", "--rules", "nope.yaml"}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompare_RulesOverride(t *testing.T) {
	rules := writeFile(t, "rules.yaml", `rent_relief_cap: "100000"`)

	out, _, err := execute(t, append([]string{"compare", "--format", "json", "--rules", rules}, scenarioFlags()...)...)
	require.NoError(t, err)

	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.RentRelief.Equal(decimal.NewFromInt(100_000)))
}

func TestCompare_DebugLogs(t *testing.T) {
	_, stderr, err := execute(t, append([]string{"compare", "--debug"}, scenarioFlags()...)...)

	require.NoError(t, err)
	assert.Contains(t, stderr, "cra=1280000")
}

func TestSaveHistoryShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ngtax.db")

	_, stderr, err := execute(t, append([]string{"compare", "--save", "--db", db, "--label", "scenario"}, scenarioFlags()...)...)
	require.NoError(t, err)

	m := regexp.MustCompile(`Saved record ([0-9a-f-]{36})`).FindStringSubmatch(stderr)
	require.Len(t, m, 2)
	id := m[1]

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "scenario")
	assert.Contains(t, out, "₦6,000,000.00")

	out, _, err = execute(t, "show", id, "--db", db, "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX REGIME SUMMARY")

	_, _, err = execute(t, "show", "00000000-0000-0000-0000-000000000000", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved comparison")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ngtax.db")

	out, _, err := execute(t, "history", "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "No saved comparisons.")
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "inputs.yaml", "annual_income: \"3000000\"\nlabel: me\n")
	bad := writeFile(t, "bad.yaml", "annual_income: \"-3\"\n")

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "₦3,000,000.00")

	_, _, err = execute(t, "validate", bad)
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	out, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Old Regime (CRA)")
	assert.Contains(t, out, "remainder")
	assert.Contains(t, out, "₦500,000.00")

	out, _, err = execute(t, "rules", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "rent_relief_cap:")

	_, _, err = execute(t, "rules", "--format", "xml")
	assert.Error(t, err)
}

func TestCrossover(t *testing.T) {
	out, _, err := execute(t, "crossover", "--from", "1,000,000", "--to", "50,000,000", "--step", "1000000")
	require.NoError(t, err)
	assert.Contains(t, out, "REGIME CROSSOVER ANALYSIS")
	assert.Contains(t, out, "₦17,444,444.44")

	out, _, err = execute(t, "crossover", "--to", "5000000", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"crossovers": []`)

	_, _, err = execute(t, "crossover", "--from", "9", "--to", "1")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "ngtax dev")
}

func TestServerConfigFromFlags(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "env.db")
	resetFlags(rootCmd)
	require.NoError(t, serveCmd.Flags().Set("db", "flag.db"))
	require.NoError(t, serveCmd.Flags().Set("env-file", filepath.Join(t.TempDir(), "missing.env")))

	cfg, err := serverConfigFromFlags(serveCmd)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port, "env fills unset flags")
	assert.Equal(t, "flag.db", cfg.DatabaseURL, "explicit flags win")
	assert.Equal(t, "sqlite", cfg.DatabaseType)
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogLogger(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Warnf("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}
