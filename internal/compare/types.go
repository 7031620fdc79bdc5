package compare

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Result kinds
const (
	KindBase   = "base"
	KindClient = "client"
	KindWhatIf = "what-if"
)

// ComparisonResult represents one evaluated client or what-if variant
type ComparisonResult struct {
	Name        string               `json:"name"`
	Kind        string               `json:"kind"`
	Description string               `json:"description,omitempty"`
	Report      *domain.ClientReport `json:"-"`

	// Key Metrics
	NetWorth        decimal.Decimal  `json:"netWorth"`
	SavingsRate     decimal.Decimal  `json:"savingsRate"`
	DebtRatio       decimal.Decimal  `json:"debtRatio"`
	EmergencyMonths decimal.Decimal  `json:"emergencyMonths"`
	Scores          domain.ScoreCard `json:"scores"`
	AdvisoryCount   int              `json:"advisoryCount"`

	// Comparison to Base
	NetWorthDiff        decimal.Decimal  `json:"netWorthDiff"`
	ScoreDiff           domain.ScoreCard `json:"scoreDiff"`
	AdvisoryDiff        int              `json:"advisoryDiff"`
	SavingsRateDiff     decimal.Decimal  `json:"savingsRateDiff"`
	EmergencyMonthsDiff decimal.Decimal  `json:"emergencyMonthsDiff"`

	// Error is set when the record could not be evaluated
	Error string `json:"error,omitempty"`
}

// OK reports whether the result carries metrics
func (r ComparisonResult) OK() bool { return r.Error == "" }

// ComparisonSet represents a base client compared against alternatives
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	Source             string             `json:"source"`
}

// MetricsCalculator extracts comparison metrics from client reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics turns a report into a comparison row
func (mc *MetricsCalculator) CalculateMetrics(name, kind string, report *domain.ClientReport) ComparisonResult {
	result := ComparisonResult{
		Name:   name,
		Kind:   kind,
		Report: report,
	}
	if report == nil {
		result.Error = "no report"
		return result
	}
	if !report.OK() {
		result.Error = report.ErrorText()
		return result
	}

	result.NetWorth = report.Metrics.NetWorth
	result.SavingsRate = report.Metrics.SavingsRate
	result.DebtRatio = report.Metrics.DebtRatio
	result.EmergencyMonths = report.Metrics.EmergencyMonths
	result.Scores = report.Scores
	result.AdvisoryCount = len(report.Advisories)
	return result
}

// CalculateComparison computes deltas between an alternative and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	if !alt.OK() || !base.OK() {
		return alt
	}

	alt.NetWorthDiff = alt.NetWorth.Sub(base.NetWorth)
	alt.SavingsRateDiff = alt.SavingsRate.Sub(base.SavingsRate)
	alt.EmergencyMonthsDiff = alt.EmergencyMonths.Sub(base.EmergencyMonths)
	alt.AdvisoryDiff = alt.AdvisoryCount - base.AdvisoryCount
	alt.ScoreDiff = domain.ScoreCard{
		Investment:    alt.Scores.Investment - base.Scores.Investment,
		Debt:          alt.Scores.Debt - base.Scores.Debt,
		Budgeting:     alt.Scores.Budgeting - base.Scores.Budgeting,
		EmergencyFund: alt.Scores.EmergencyFund - base.Scores.EmergencyFund,
	}
	return alt
}

// GenerateRecommendations names the alternative that improves each score the most,
// the one with the fewest advisories and the one with the highest net worth
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || !compSet.BaseResult.OK() || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	baseEntries := base.Scores.Entries()
	for i, entry := range baseEntries {
		best, bestValue := -1, entry.Value
		for j, alt := range compSet.AlternativeResults {
			if !alt.OK() {
				continue
			}
			if v := alt.Scores.Entries()[i].Value; v > bestValue {
				best, bestValue = j, v
			}
		}
		if best >= 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Best %s: %s raises it from %d to %d (+%d)",
					entry.Label, compSet.AlternativeResults[best].Name, entry.Value, bestValue, bestValue-entry.Value))
		}
	}

	fewest := -1
	fewestCount := base.AdvisoryCount
	for j, alt := range compSet.AlternativeResults {
		if alt.OK() && alt.AdvisoryCount < fewestCount {
			fewest, fewestCount = j, alt.AdvisoryCount
		}
	}
	if fewest >= 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Fewest Advisories: %s has %d (base has %d)",
				compSet.AlternativeResults[fewest].Name, fewestCount, base.AdvisoryCount))
	}

	richest := -1
	richestWorth := base.NetWorth
	for j, alt := range compSet.AlternativeResults {
		if alt.OK() && alt.NetWorth.GreaterThan(richestWorth) {
			richest, richestWorth = j, alt.NetWorth
		}
	}
	if richest >= 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Net Worth: %s is %s above base",
				compSet.AlternativeResults[richest].Name, richestWorth.Sub(base.NetWorth).StringFixed(0)))
	}

	return recommendations
}
