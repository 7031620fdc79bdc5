package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

const (
	chartWidth = 40
	barWidth   = 30
)

// ConsoleFormatter renders the dashboard as plain text
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "PERSONAL FINANCIAL HEALTH DASHBOARD")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	if len(reports) == 0 {
		fmt.Fprintln(&buf, "\nNo clients to display.")
		return buf.Bytes(), nil
	}

	for _, report := range reports {
		fmt.Fprintln(&buf)
		writeConsoleReport(&buf, report)
	}
	return buf.Bytes(), nil
}

func writeConsoleReport(w io.Writer, report domain.ClientReport) {
	client := report.Client
	fmt.Fprintf(w, "CLIENT: %s\n", client.Name)
	fmt.Fprintln(w, strings.Repeat("-", 72))

	if !report.OK() {
		fmt.Fprintf(w, "N/A: %s\n", report.ErrorText())
		return
	}

	code := client.CurrencyCode()
	m := report.Metrics

	fmt.Fprintln(w, "FINANCIAL SUMMARY")
	fmt.Fprintf(w, "  Income (Annual):    %s\n", FormatCurrency(client.Income, code))
	fmt.Fprintf(w, "  Expenses (Annual):  %s\n", FormatCurrency(client.Expenses, code))
	fmt.Fprintf(w, "  Net Worth:          %s\n", FormatCurrency(m.NetWorth, code))
	fmt.Fprintf(w, "  Savings Rate:       %s\n", FormatPercentage(m.SavingsRate))
	fmt.Fprintf(w, "  Debt Ratio:         %s\n", FormatPercentage(m.DebtRatio))
	fmt.Fprintf(w, "  Emergency Fund:     %s (%s)\n", FormatCurrency(client.EmergencyFund, code), FormatMonths(m.EmergencyMonths))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ASSET ALLOCATION")
	bars := AssetBars(client.Assets, chartWidth)
	if len(bars) == 0 {
		fmt.Fprintln(w, "  (no assets)")
	}
	lw := labelWidth(bars, func(b Bar) string { return b.Label })
	for _, b := range bars {
		fmt.Fprintf(w, "  %-*s %s %s\n", lw, b.Label, strings.Repeat("█", b.Length), FormatCurrency(b.Amount, code))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PORTFOLIO OVERVIEW")
	shares := PortfolioShares(client.Portfolio)
	if len(shares) == 0 {
		fmt.Fprintln(w, "  (no holdings)")
	}
	lw = labelWidth(shares, func(s Slice) string { return s.Label })
	for _, s := range shares {
		fmt.Fprintf(w, "  %-*s %5s%%  %s\n", lw, s.Label, s.Percent.StringFixed(1), FormatCurrency(s.Amount, code))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FINANCIAL HEALTH SCORES")
	for _, entry := range report.Scores.Entries() {
		filled := ScoreBarLength(entry.Value, barWidth)
		fmt.Fprintf(w, "  [%s%s] %s: %s\n",
			strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), entry.Label, FormatScore(entry.Value))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RECOMMENDATIONS")
	if len(report.Advisories) == 0 {
		fmt.Fprintln(w, "  No advisories. Keep it up.")
	}
	for _, a := range report.Advisories {
		fmt.Fprintf(w, "  [%s] %s\n", a.Severity, a.Message)
	}
}
