package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DerivedMetrics are recomputed for every request and never stored
type DerivedMetrics struct {
	NetWorth        decimal.Decimal `json:"netWorth"`
	SavingsRate     decimal.Decimal `json:"savingsRate"`
	DebtRatio       decimal.Decimal `json:"debtRatio"`
	EmergencyMonths decimal.Decimal `json:"emergencyMonths"`

	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	PortfolioValue   decimal.Decimal `json:"portfolioValue"`
}

// ScoreCard holds the four integer health scores. Investment, Debt and EmergencyFund
// are always within [0,100]; Budgeting is only bounded when the policy clamps it.
type ScoreCard struct {
	Investment    int `json:"investment"`
	Debt          int `json:"debt"`
	Budgeting     int `json:"budgeting"`
	EmergencyFund int `json:"emergencyFund"`
}

// ScoreEntry is a labelled score, used by renderers that iterate over the card
type ScoreEntry struct {
	Label string
	Value int
}

// Entries returns the scores in display order
func (s ScoreCard) Entries() []ScoreEntry {
	return []ScoreEntry{
		{Label: "Investment Score", Value: s.Investment},
		{Label: "Debt Score", Value: s.Debt},
		{Label: "Budgeting Score", Value: s.Budgeting},
		{Label: "Emergency Fund Score", Value: s.EmergencyFund},
	}
}

// Severity is the tier of an advisory banner
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity accepts info, warning or error in any case
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityInfo:
		return SeverityInfo, nil
	case SeverityWarning, "warn":
		return SeverityWarning, nil
	case SeverityError:
		return SeverityError, nil
	}
	return "", fmt.Errorf("unknown severity %q (valid: info, warning, error)", s)
}

// UnmarshalText lets YAML and JSON decode severities through ParseSeverity
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Severity) String() string { return strings.ToUpper(string(s)) }

// Advisory codes for the built-in threshold rules
const (
	AdvisoryLowSavings       = "low-savings-rate"
	AdvisoryLowEmergencyFund = "insufficient-emergency-fund"
	AdvisoryHighDebtRatio    = "high-debt-ratio"
)

// Advisory is a textual recommendation produced by a threshold or custom rule
type Advisory struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// ClientReport is everything the presentation layer needs for one client. When Err is
// set the record was rejected and Metrics/Scores are zero values.
type ClientReport struct {
	Client     ClientRecord   `json:"client"`
	Metrics    DerivedMetrics `json:"metrics"`
	Scores     ScoreCard      `json:"scores"`
	Advisories []Advisory     `json:"advisories"`
	Err        error          `json:"-"`
}

// OK reports whether the client was evaluated successfully
func (r ClientReport) OK() bool { return r.Err == nil }

// ErrorText returns the rejection reason or an empty string
func (r ClientReport) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RuleConfig declares a custom advisory as a CEL expression evaluated against the
// client's metrics and scores
type RuleConfig struct {
	ID         string   `yaml:"id" json:"id"`
	Severity   Severity `yaml:"severity" json:"severity"`
	Title      string   `yaml:"title" json:"title"`
	Message    string   `yaml:"message" json:"message"`
	Expression string   `yaml:"expression" json:"expression"`
	Disabled   bool     `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}
