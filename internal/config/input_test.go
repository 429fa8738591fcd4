package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadInputsFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	file, err := parser.LoadInputsFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, file, "Should return nil inputs")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadInputsFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	file, err := NewInputParser().LoadInputsFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadInputsFromFile_ValidYAML(t *testing.T) {
	path := writeFile(t, "valid.yaml", `
label: "Ada, Lagos"
annual_income: 6000000
pension_monthly: 50000
rent_annual: 1200000
nhf_annual: "12500.50"
`)

	file, err := NewInputParser().LoadInputsFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Ada, Lagos", file.Label)
	assert.True(t, file.Inputs.AnnualIncome.Equal(decimal.NewFromInt(6000000)))
	assert.True(t, file.Inputs.PensionMonthly.Equal(decimal.NewFromInt(50000)))
	assert.True(t, file.Inputs.RentAnnual.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, file.Inputs.NHFAnnual.Equal(decimal.RequireFromString("12500.50")))
	assert.True(t, file.Inputs.HealthMonthly.IsZero(), "absent fields default to zero")
}

func TestInputParser_LoadInputsFromFile_JSON(t *testing.T) {
	path := writeFile(t, "inputs.json", `{"annual_income": 2500000, "health_monthly": 3000}`)

	file, err := NewInputParser().LoadInputsFromFile(path)

	require.NoError(t, err)
	assert.True(t, file.Inputs.AnnualIncome.Equal(decimal.NewFromInt(2500000)))
	assert.True(t, file.Inputs.HealthMonthly.Equal(decimal.NewFromInt(3000)))
}

func TestInputParser_LoadInputsFromFile_Negative(t *testing.T) {
	path := writeFile(t, "neg.yaml", "annual_income: 100\nrent_annual: -5\n")

	file, err := NewInputParser().LoadInputsFromFile(path)

	assert.Nil(t, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rent_annual cannot be negative")
}

func TestInputParser_SaveInputs_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := &InputFile{
		Label: "round trip",
		Inputs: domain.TaxInputs{
			AnnualIncome:         decimal.RequireFromString("4200000.25"),
			LifeInsuranceMonthly: decimal.NewFromInt(7000),
		},
	}

	require.NoError(t, parser.SaveInputs(in, path))
	out, err := parser.LoadInputsFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, in.Label, out.Label)
	assert.True(t, out.Inputs.AnnualIncome.Equal(in.Inputs.AnnualIncome))
	assert.True(t, out.Inputs.LifeInsuranceMonthly.Equal(in.Inputs.LifeInsuranceMonthly))
}

func TestInputParser_ParseRules_Overrides(t *testing.T) {
	rules, err := NewInputParser().ParseRules([]byte(`
rent_relief_cap: 750000
new_table:
  name: new
  bands:
    - width: 1000000
      rate: 0
    - rate: 0.2
      unbounded: true
`))

	require.NoError(t, err)
	assert.True(t, rules.RentReliefCap.Equal(decimal.NewFromInt(750000)))
	assert.Len(t, rules.NewTable.Bands, 2)
	assert.Len(t, rules.OldTable.Bands, 6, "old table keeps its default")
	assert.True(t, rules.CRAFloor.Equal(decimal.NewFromInt(200000)), "absent keys keep defaults")
	assert.Equal(t, 12, rules.MonthsPerYear)
}

func TestInputParser_ParseRules_Invalid(t *testing.T) {
	_, err := NewInputParser().ParseRules([]byte(`
old_table:
  name: old
  bands:
    - width: 100
      rate: 0.1
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules validation failed")
}

func TestInputParser_LoadRulesFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadRulesFromFile(filepath.Join(t.TempDir(), "none.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
