package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/ngtax/internal/calculation"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputFile is the on-disk form of one taxpayer's figures
type InputFile struct {
	Label  string           `yaml:"label,omitempty" json:"label,omitempty"`
	Inputs domain.TaxInputs `yaml:",inline" json:"inputs"`
}

// InputParser handles parsing of input and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadInputsFromFile loads taxpayer inputs from a YAML or JSON file
func (ip *InputParser) LoadInputsFromFile(filename string) (*InputFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file InputFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInputs(&file.Inputs); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &file, nil
}

// ValidateInputs rejects negative amounts. The engine would clamp them, but
// a negative figure in a file is almost always a typo worth reporting.
func (ip *InputParser) ValidateInputs(inputs *domain.TaxInputs) error {
	for _, f := range inputs.Fields() {
		if f.Value.IsNegative() {
			return fmt.Errorf("%s cannot be negative (got %s)", f.Name, f.Value.String())
		}
	}
	return nil
}

// LoadRulesFromFile loads a rules override file. Keys present in the file
// replace the built-in values; absent keys keep their defaults. A bracket
// table, when given, replaces the whole default table.
func (ip *InputParser) LoadRulesFromFile(filename string) (domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRules(data)
}

// ParseRules decodes rules from YAML or JSON bytes over the defaults
func (ip *InputParser) ParseRules(data []byte) (domain.TaxRules, error) {
	rules := calculation.DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return domain.TaxRules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// SaveInputs writes inputs back out as YAML
func (ip *InputParser) SaveInputs(file *InputFile, filename string) error {
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
