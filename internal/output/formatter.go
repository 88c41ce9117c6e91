package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/ptpay/internal/domain"
)

// Formatter renders a report into bytes for one output format.
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var registry = map[string]Formatter{}

// aliases map alternative names onto registered formatters.
var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console",
	"summary":         "console-lite",
	"yml":             "yaml",
}

func register(f Formatter) { registry[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(DetailedCSVFormatter{})
	register(JSONFormatter{})
	register(YAMLFormatter{})
	register(HTMLFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	out := make([]string, 0, len(aliases))
	for alias := range aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// FileExtension is the extension WriteFormatted uses for a formatter.
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "console", "console-lite":
		return "txt"
	case "detailed-csv":
		return "csv"
	default:
		return f.Name()
	}
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the file name.
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("ptpay_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
