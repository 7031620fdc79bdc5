package rules

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// BuiltinRules describes the three threshold advisories as CEL rules. The metrics
// engine evaluates them natively; these configurations exist for listing and for
// checking that a custom rule set does not reuse a built-in id.
func BuiltinRules(policy domain.ScoringPolicy) []domain.RuleConfig {
	p := policy.WithDefaults()
	return []domain.RuleConfig{
		{
			ID:         domain.AdvisoryLowSavings,
			Severity:   domain.SeverityWarning,
			Title:      "Low savings rate",
			Expression: fmt.Sprintf("metrics.savings_rate < %s", celDouble(p.LowSavingsThreshold.String())),
		},
		{
			ID:         domain.AdvisoryLowEmergencyFund,
			Severity:   domain.SeverityInfo,
			Title:      "Insufficient emergency fund",
			Expression: fmt.Sprintf("metrics.emergency_months < %s", celDouble(p.EmergencyTargetMonths.String())),
		},
		{
			ID:         domain.AdvisoryHighDebtRatio,
			Severity:   domain.SeverityError,
			Title:      "High debt ratio",
			Expression: fmt.Sprintf("metrics.debt_ratio > %s", celDouble(p.HighDebtThreshold.String())),
		},
	}
}

// IsBuiltinID reports whether id names one of the built-in advisories
func IsBuiltinID(id string) bool {
	switch id {
	case domain.AdvisoryLowSavings, domain.AdvisoryLowEmergencyFund, domain.AdvisoryHighDebtRatio:
		return true
	}
	return false
}

// celDouble makes sure a decimal literal is typed as double ("6" -> "6.0")
func celDouble(s string) string {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return s
		}
	}
	return s + ".0"
}
