package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// CSVFormatter writes one row per client
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Client", "Currency", "Income", "Expenses", "NetWorth", "SavingsRate", "DebtRatio", "EmergencyMonths",
		"InvestmentScore", "DebtScore", "BudgetingScore", "EmergencyFundScore", "Advisories", "Error",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range reports {
		row := make([]string, len(header))
		row[0], row[1] = r.Client.Name, r.Client.CurrencyCode()
		if !r.OK() {
			row[13] = r.ErrorText()
		} else {
			codes := make([]string, 0, len(r.Advisories))
			for _, a := range r.Advisories {
				codes = append(codes, a.Code)
			}
			row[2] = r.Client.Income.StringFixed(2)
			row[3] = r.Client.Expenses.StringFixed(2)
			row[4] = r.Metrics.NetWorth.StringFixed(2)
			row[5] = r.Metrics.SavingsRate.StringFixed(4)
			row[6] = r.Metrics.DebtRatio.StringFixed(4)
			row[7] = r.Metrics.EmergencyMonths.StringFixed(2)
			row[8] = strconv.Itoa(r.Scores.Investment)
			row[9] = strconv.Itoa(r.Scores.Debt)
			row[10] = strconv.Itoa(r.Scores.Budgeting)
			row[11] = strconv.Itoa(r.Scores.EmergencyFund)
			row[12] = strings.Join(codes, ";")
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
