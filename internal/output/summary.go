package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// formatSummary writes one line per client: net worth, the four scores and the
// number of advisories
func formatSummary(reports []domain.ClientReport) ([]byte, error) {
	if len(reports) == 0 {
		return []byte("No clients to display.\n"), nil
	}

	var sb strings.Builder
	for _, r := range reports {
		if !r.OK() {
			fmt.Fprintf(&sb, "%s: N/A (%s)\n", r.Client.Name, r.ErrorText())
			continue
		}
		s := r.Scores
		fmt.Fprintf(&sb, "%s: net worth %s | scores %d/%d/%d/%d | %d advisories\n",
			r.Client.Name,
			FormatCurrency(r.Metrics.NetWorth, r.Client.CurrencyCode()),
			s.Investment, s.Debt, s.Budgeting, s.EmergencyFund,
			len(r.Advisories))
	}
	return []byte(sb.String()), nil
}
