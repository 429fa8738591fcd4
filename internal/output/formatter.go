package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/ngtax/internal/domain"
)

// Formatter renders a comparison result in one output format
type Formatter interface {
	Name() string
	Format(result *domain.ComparisonResult) ([]byte, error)
}

// formatterFunc adapts a plain function to the Formatter interface
type formatterFunc struct {
	ID string
	F  func(result *domain.ComparisonResult) ([]byte, error)
}

func (f formatterFunc) Name() string { return f.ID }

func (f formatterFunc) Format(result *domain.ComparisonResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{}

// aliases map alternative names onto registered formatters
var aliases = map[string]string{
	"table":           "console",
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
	"yml":             "yaml",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleLiteFormatter{})
	register(CSVFormatter{})
	register(JSONFormatter{Pretty: true})
	register(YAMLFormatter{})
	register(HTMLFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil if there is none.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames lists registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alias names in sorted order
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension conventionally used for a format
func Extension(f Formatter) string {
	switch f.Name() {
	case "console", "console-lite":
		return "txt"
	default:
		return f.Name()
	}
}

// WriteFormatted formats the result and writes it to a timestamped file in
// the working directory, returning the file name.
func WriteFormatted(f Formatter, result *domain.ComparisonResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("ngtax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
