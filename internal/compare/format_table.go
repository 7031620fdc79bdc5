package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the base with its alternatives
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FINANCIAL HEALTH COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Client: %s\n", compSet.BaseName))
	if compSet.Source != "" {
		sb.WriteString(fmt.Sprintf("Client Book: %s\n", compSet.Source))
	}
	sb.WriteString("\n")

	nameWidth := 30
	numWidth := 9

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Client",
		numWidth+2, "Net Worth",
		numWidth-2, "Invest",
		numWidth-2, "Debt",
		numWidth-2, "Budget",
		numWidth-2, "Emerg",
		numWidth, "Advisories"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			if !alt.OK() {
				sb.WriteString(fmt.Sprintf("  N/A: %s\n", alt.Error))
				continue
			}

			sb.WriteString(fmt.Sprintf("  Net Worth:        %s%s\n",
				tf.deltaSymbol(alt.NetWorthDiff), tf.formatDecimal(alt.NetWorthDiff)))
			for i, entry := range alt.ScoreDiff.Entries() {
				if entry.Value == 0 {
					continue
				}
				base := compSet.BaseResult.Scores.Entries()[i].Value
				sb.WriteString(fmt.Sprintf("  %-18s%s (%d -> %d)\n",
					entry.Label+":", signedInt(entry.Value), base, base+entry.Value))
			}
			if alt.AdvisoryDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Advisories:       %s\n", signedInt(alt.AdvisoryDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single client row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}

	if !result.OK() {
		return fmt.Sprintf("%-*s %*s\n", nameWidth, tf.truncate(name, nameWidth), numWidth+2, "N/A")
	}

	return fmt.Sprintf("%-*s %*s %*d %*d %*d %*d %*d\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth+2, tf.formatDecimal(result.NetWorth),
		numWidth-2, result.Scores.Investment,
		numWidth-2, result.Scores.Debt,
		numWidth-2, result.Scores.Budgeting,
		numWidth-2, result.Scores.EmergencyFund,
		numWidth, result.AdvisoryCount)
}

// formatDecimal formats a decimal for display (in thousands or millions)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + for positive deltas; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		if !alt.OK() {
			sb.WriteString(fmt.Sprintf("%s: N/A", alt.Name))
			continue
		}
		total := alt.ScoreDiff.Investment + alt.ScoreDiff.Debt + alt.ScoreDiff.Budgeting + alt.ScoreDiff.EmergencyFund
		change := "="
		if total != 0 {
			change = signedInt(total) + " pts"
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}

	return sb.String()
}

func signedInt(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}
