package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

// MarkdownFormatter renders the dashboard as a Markdown document
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "# Personal Financial Health Dashboard")
	if len(reports) == 0 {
		fmt.Fprintln(&buf, "\nNo clients to display.")
	}
	for _, report := range reports {
		fmt.Fprintln(&buf)
		writeMarkdownReport(&buf, report)
	}
	return buf.Bytes(), nil
}

func writeMarkdownReport(w io.Writer, report domain.ClientReport) {
	client := report.Client
	fmt.Fprintf(w, "## %s\n\n", client.Name)

	if !report.OK() {
		fmt.Fprintf(w, "**N/A**: %s\n", report.ErrorText())
		return
	}

	code := client.CurrencyCode()
	m := report.Metrics

	fmt.Fprintln(w, "### Financial Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|---|---:|")
	fmt.Fprintf(w, "| Income (Annual) | %s |\n", FormatCurrency(client.Income, code))
	fmt.Fprintf(w, "| Expenses (Annual) | %s |\n", FormatCurrency(client.Expenses, code))
	fmt.Fprintf(w, "| Net Worth | %s |\n", FormatCurrency(m.NetWorth, code))
	fmt.Fprintf(w, "| Savings Rate | %s |\n", FormatPercentage(m.SavingsRate))
	fmt.Fprintf(w, "| Debt Ratio | %s |\n", FormatPercentage(m.DebtRatio))
	fmt.Fprintf(w, "| Emergency Fund | %s |\n", FormatMonths(m.EmergencyMonths))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Asset Allocation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Category | Amount | |")
	fmt.Fprintln(w, "|---|---:|---|")
	for _, b := range AssetBars(client.Assets, chartWidth/2) {
		fmt.Fprintf(w, "| %s | %s | `%s` |\n", escapeCell(b.Label), FormatCurrency(b.Amount, code), strings.Repeat("█", b.Length))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Portfolio Overview")
	fmt.Fprintln(w)
	shares := PortfolioShares(client.Portfolio)
	if len(shares) == 0 {
		fmt.Fprintln(w, "_No holdings._")
	}
	for _, s := range shares {
		fmt.Fprintf(w, "- %s: %s%%\n", s.Label, s.Percent.StringFixed(1))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Financial Health Scores")
	fmt.Fprintln(w)
	for _, entry := range report.Scores.Entries() {
		fmt.Fprintf(w, "- **%s**: %s\n", entry.Label, FormatScore(entry.Value))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Recommendations")
	fmt.Fprintln(w)
	if len(report.Advisories) == 0 {
		fmt.Fprintln(w, "_No advisories._")
	}
	for _, a := range report.Advisories {
		fmt.Fprintf(w, "> **%s**: %s\n\n", a.Severity, a.Message)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// TerminalMarkdownFormatter renders the Markdown dashboard for a terminal with glamour
type TerminalMarkdownFormatter struct {
	Style    string // glamour standard style; detected from the terminal when empty
	WordWrap int    // 100 when zero
}

func (t TerminalMarkdownFormatter) Name() string { return "markdown-term" }

func (t TerminalMarkdownFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(reports)
	if err != nil {
		return nil, err
	}

	wrap := t.WordWrap
	if wrap == 0 {
		wrap = 100
	}

	// auto style falls back to notty when stdout is not a terminal
	styleOpt := glamour.WithAutoStyle()
	if t.Style != "" {
		styleOpt = glamour.WithStandardStyle(t.Style)
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
