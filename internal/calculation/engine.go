package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CustomAdvisor produces advisories beyond the built-in threshold rules
type CustomAdvisor interface {
	Advise(ctx context.Context, record domain.ClientRecord, metrics domain.DerivedMetrics, scores domain.ScoreCard) ([]domain.Advisory, error)
}

// MetricsEngine turns a ClientRecord into derived metrics, scores and advisories.
// It holds no per-request state, so one engine can serve any number of callers.
type MetricsEngine struct {
	Policy  domain.ScoringPolicy
	Logger  Logger
	Advisor CustomAdvisor
	Debug   bool // Log every intermediate value at debug level
}

// NewMetricsEngine creates an engine with the default scoring policy
func NewMetricsEngine() *MetricsEngine {
	return NewMetricsEngineWithPolicy(domain.DefaultScoringPolicy())
}

// NewMetricsEngineWithPolicy creates an engine with custom thresholds
func NewMetricsEngineWithPolicy(policy domain.ScoringPolicy) *MetricsEngine {
	return &MetricsEngine{
		Policy: policy.WithDefaults(),
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *MetricsEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetAdvisor attaches a source of custom advisories
func (e *MetricsEngine) SetAdvisor(a CustomAdvisor) {
	e.Advisor = a
}

// ComputeMetrics derives net worth, savings rate, debt ratio and emergency fund
// coverage. Records with a non-positive income or expenses are rejected with an
// *domain.InvalidRecordError rather than dividing by zero.
func (e *MetricsEngine) ComputeMetrics(record domain.ClientRecord) (domain.DerivedMetrics, error) {
	if err := ValidateRecord(record); err != nil {
		return domain.DerivedMetrics{}, err
	}

	totalAssets := record.Assets.Total()
	totalLiabilities := record.Liabilities.Total()

	m := domain.DerivedMetrics{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		PortfolioValue:   record.Portfolio.Total(),
		NetWorth:         totalAssets.Sub(totalLiabilities),
		// 1 - expenses/income, kept as a single division
		SavingsRate: record.Income.Sub(record.Expenses).Div(record.Income),
		DebtRatio:   totalLiabilities.Div(record.Income),
		// emergency_fund / (expenses/12) without the intermediate rounding
		EmergencyMonths: record.EmergencyFund.Mul(twelve).Div(record.Expenses),
	}

	if e.Debug {
		e.logger().Debugf("metrics for %s: net_worth=%s savings_rate=%s debt_ratio=%s emergency_months=%s",
			record.Name, m.NetWorth.String(), m.SavingsRate.StringFixed(4), m.DebtRatio.StringFixed(4), m.EmergencyMonths.StringFixed(4))
	}
	return m, nil
}

// ComputeScores applies the four scoring formulas to a record and its metrics.
// Investment, debt and emergency fund scores are clamped to [0,100]; the budgeting
// score is only clamped when the policy asks for it. All scores are floored.
func (e *MetricsEngine) ComputeScores(record domain.ClientRecord, metrics domain.DerivedMetrics) (domain.ScoreCard, error) {
	if err := requirePositive(record.Name, "income", record.Income); err != nil {
		return domain.ScoreCard{}, err
	}

	p := e.Policy.WithDefaults()
	target := p.EmergencyTargetMonths
	if target.LessThanOrEqual(decimal.Zero) {
		target = domain.DefaultScoringPolicy().EmergencyTargetMonths
	}

	budgeting := metrics.SavingsRate.Mul(hundred)
	if p.ClampBudgeting {
		budgeting = clamp(budgeting)
	}

	scores := domain.ScoreCard{
		Investment:    boundedScore(record.Portfolio.Total().Mul(hundred).Div(record.Income)),
		Debt:          boundedScore(hundred.Sub(metrics.DebtRatio.Mul(hundred))),
		Budgeting:     int(budgeting.Floor().IntPart()),
		EmergencyFund: boundedScore(metrics.EmergencyMonths.Mul(hundred).Div(target)),
	}

	if e.Debug {
		e.logger().Debugf("scores for %s: investment=%d debt=%d budgeting=%d emergency_fund=%d",
			record.Name, scores.Investment, scores.Debt, scores.Budgeting, scores.EmergencyFund)
	}
	return scores, nil
}

// GenerateAdvisories evaluates the three threshold rules. Each rule fires
// independently and the result is always ordered savings, emergency fund, debt.
func (e *MetricsEngine) GenerateAdvisories(metrics domain.DerivedMetrics) []domain.Advisory {
	p := e.Policy.WithDefaults()
	advisories := []domain.Advisory{}

	if metrics.SavingsRate.LessThan(p.LowSavingsThreshold) {
		advisories = append(advisories, domain.Advisory{
			Code:     domain.AdvisoryLowSavings,
			Severity: domain.SeverityWarning,
			Title:    "Low savings rate",
			Message: fmt.Sprintf("Consider increasing savings. Your current savings rate is below %s%%.",
				p.LowSavingsThreshold.Mul(hundred).String()),
		})
	}

	if metrics.EmergencyMonths.LessThan(p.EmergencyTargetMonths) {
		advisories = append(advisories, domain.Advisory{
			Code:     domain.AdvisoryLowEmergencyFund,
			Severity: domain.SeverityInfo,
			Title:    "Insufficient emergency fund",
			Message: fmt.Sprintf("Build up your emergency fund to cover at least %s months of expenses.",
				p.EmergencyTargetMonths.String()),
		})
	}

	if metrics.DebtRatio.GreaterThan(p.HighDebtThreshold) {
		advisories = append(advisories, domain.Advisory{
			Code:     domain.AdvisoryHighDebtRatio,
			Severity: domain.SeverityError,
			Title:    "High debt ratio",
			Message:  "Your debt ratio is high. Try to reduce liabilities.",
		})
	}

	return advisories
}

// Evaluate runs the full pipeline for one client
func (e *MetricsEngine) Evaluate(ctx context.Context, record domain.ClientRecord) (*domain.ClientReport, error) {
	metrics, err := e.ComputeMetrics(record)
	if err != nil {
		return nil, err
	}

	scores, err := e.ComputeScores(record, metrics)
	if err != nil {
		return nil, err
	}

	advisories := e.GenerateAdvisories(metrics)
	if e.Advisor != nil {
		custom, err := e.Advisor.Advise(ctx, record, metrics, scores)
		if err != nil {
			e.logger().Warnf("custom advisories for %s failed: %v", record.Name, err)
		}
		advisories = append(advisories, custom...)
	}

	return &domain.ClientReport{
		Client:     record,
		Metrics:    metrics,
		Scores:     scores,
		Advisories: advisories,
	}, nil
}

// EvaluateBook evaluates every client in book order. A rejected record produces a
// report carrying the error and never stops the remaining clients. The returned
// error is only set when ctx is cancelled.
func (e *MetricsEngine) EvaluateBook(ctx context.Context, book *domain.ClientBook) ([]domain.ClientReport, error) {
	reports := make([]domain.ClientReport, 0, len(book.Clients))

	for _, record := range book.Clients {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report, err := e.Evaluate(ctx, record)
		if err != nil {
			e.logger().Warnf("client %s could not be evaluated: %v", record.Name, err)
			reports = append(reports, domain.ClientReport{Client: record, Err: err})
			continue
		}
		reports = append(reports, *report)
	}

	e.logger().Infof("evaluated %d clients", len(reports))
	return reports, nil
}

func (e *MetricsEngine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func clamp(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func boundedScore(v decimal.Decimal) int {
	return int(clamp(v).Floor().IntPart())
}
