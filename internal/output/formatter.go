package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// Formatter renders client reports in one output format
type Formatter interface {
	Name() string
	Format(reports []domain.ClientReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(reports []domain.ClientReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(reports []domain.ClientReport) ([]byte, error) {
	return f.F(reports)
}

var formatters = map[string]Formatter{
	"console":       ConsoleFormatter{},
	"markdown":      MarkdownFormatter{},
	"markdown-term": TerminalMarkdownFormatter{},
	"json":          JSONFormatter{},
	"csv":           CSVFormatter{},
	"html":          HTMLFormatter{},
	"summary":       FormatterFunc{ID: "summary", F: formatSummary},
}

var formatAliases = map[string]string{
	"text":    "console",
	"md":      "markdown",
	"glamour": "markdown-term",
	"term":    "markdown-term",
}

var extensions = map[string]string{
	"console":       "txt",
	"markdown":      "md",
	"markdown-term": "txt",
	"json":          "json",
	"csv":           "csv",
	"html":          "html",
	"summary":       "txt",
}

// AvailableFormatterNames returns the registered format names in alphabetical order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alternative format names
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// GetFormatterByName resolves a format name or alias. It returns nil for unknown names.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// ExtensionFor returns the file extension used when a format is written to disk
func ExtensionFor(name string) string {
	if f := GetFormatterByName(name); f != nil {
		return extensions[f.Name()]
	}
	return "txt"
}

// WriteFormatted renders reports and writes them to finhealth_report_<timestamp>.<ext>
// in the working directory. It returns the file name.
func WriteFormatted(f Formatter, reports []domain.ClientReport, ext string) (string, error) {
	// files get plain text unless a style was chosen
	if tf, ok := f.(TerminalMarkdownFormatter); ok && tf.Style == "" {
		tf.Style = "notty"
		f = tf
	}

	data, err := f.Format(reports)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}

	filename := fmt.Sprintf("finhealth_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
