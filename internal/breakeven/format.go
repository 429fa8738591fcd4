package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ngtax/internal/output"
)

// TableFormatter formats crossover results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a crossover search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME CROSSOVER ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Income range:  %s to %s\n",
		output.FormatNaira(result.Request.MinIncome), output.FormatNaira(result.Request.MaxIncome)))
	sb.WriteString(fmt.Sprintf("Points tested: %d\n", result.Scanned))
	sb.WriteString(fmt.Sprintf("Lower tax at the bottom of the range: %s\n", output.RegimeTitle(result.AtMin)))
	sb.WriteString(fmt.Sprintf("Lower tax at the top of the range:    %s\n", output.RegimeTitle(result.AtMax)))
	sb.WriteString("\n")

	if len(result.Crossovers) == 0 {
		sb.WriteString("The cheaper regime does not change in this range.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-20s %-26s %-26s\n", "Income", "Cheaper below", "Cheaper above"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, c := range result.Crossovers {
		sb.WriteString(fmt.Sprintf("%-20s %-26s %-26s\n",
			output.FormatNaira(c.Income), output.RegimeTitle(c.Below), output.RegimeTitle(c.Above)))
	}
	return sb.String()
}

// JSONFormatter formats crossover results as JSON
type JSONFormatter struct{}

// Format generates indented JSON for a crossover search
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}
