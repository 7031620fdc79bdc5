package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Client",
		"Type",
		"Net Worth",
		"Savings Rate",
		"Debt Ratio",
		"Emergency Months",
		"Investment Score",
		"Debt Score",
		"Budgeting Score",
		"Emergency Fund Score",
		"Advisories",
		"Net Worth Diff",
		"Investment Diff",
		"Debt Diff",
		"Budgeting Diff",
		"Emergency Fund Diff",
		"Error",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult)); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult) []string {
	if !result.OK() {
		row := make([]string, 17)
		row[0], row[1], row[16] = result.Name, result.Kind, result.Error
		return row
	}
	return []string{
		result.Name,
		result.Kind,
		result.NetWorth.StringFixed(2),
		result.SavingsRate.StringFixed(4),
		result.DebtRatio.StringFixed(4),
		result.EmergencyMonths.StringFixed(2),
		formatInt(result.Scores.Investment),
		formatInt(result.Scores.Debt),
		formatInt(result.Scores.Budgeting),
		formatInt(result.Scores.EmergencyFund),
		formatInt(result.AdvisoryCount),
		result.NetWorthDiff.StringFixed(2),
		formatInt(result.ScoreDiff.Investment),
		formatInt(result.ScoreDiff.Debt),
		formatInt(result.ScoreDiff.Budgeting),
		formatInt(result.ScoreDiff.EmergencyFund),
		"",
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
