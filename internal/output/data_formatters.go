package output

import (
	"encoding/json"

	"github.com/rgehrsitz/ngtax/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the full result as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// YAMLFormatter renders the full result as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	return yaml.Marshal(result)
}
