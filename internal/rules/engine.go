// Package rules evaluates user-defined advisory rules written as CEL expressions.
package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/rgehrsitz/finhealth/internal/domain"
)

// Logger receives rule evaluation failures. calculation.Logger satisfies it.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

// Engine holds compiled advisory rules in declaration order
type Engine struct {
	env    *cel.Env
	rules  []*CompiledRule
	logger Logger
}

// CompiledRule holds a pre-compiled CEL program.
type CompiledRule struct {
	Config  domain.RuleConfig
	Program cel.Program
}

// NewEngine creates an engine whose environment exposes the client's metrics and scores
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("metrics", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("scores", cel.MapType(cel.StringType, cel.IntType)),
		cel.Variable("income", cel.DoubleType),
		cel.Variable("expenses", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Engine{env: env, logger: nopLogger{}}, nil
}

// SetLogger sets the logger used for evaluation failures
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = nopLogger{}
		return
	}
	e.logger = l
}

// ValidateRule compiles a rule without loading it
func (e *Engine) ValidateRule(cfg domain.RuleConfig) error {
	_, err := e.compileRule(cfg)
	return err
}

// LoadRules compiles every enabled rule and replaces the loaded set. All compile
// errors are reported together; on error the previous rules stay loaded.
func (e *Engine) LoadRules(configs []domain.RuleConfig) error {
	var errs []error
	seen := make(map[string]bool)
	compiled := make([]*CompiledRule, 0, len(configs))

	for _, cfg := range configs {
		if cfg.ID != "" && seen[cfg.ID] {
			errs = append(errs, fmt.Errorf("duplicate rule id %q", cfg.ID))
			continue
		}
		seen[cfg.ID] = true

		if cfg.Disabled {
			continue
		}
		rule, err := e.compileRule(cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled = append(compiled, rule)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	e.rules = compiled
	return nil
}

// Rules returns the configurations of the loaded rules
func (e *Engine) Rules() []domain.RuleConfig {
	out := make([]domain.RuleConfig, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, r.Config)
	}
	return out
}

// RulesCount returns the number of loaded rules.
func (e *Engine) RulesCount() int {
	return len(e.rules)
}

// Advise evaluates every loaded rule and returns an advisory for each one whose
// expression is true. A rule that fails to evaluate is logged and skipped.
func (e *Engine) Advise(ctx context.Context, record domain.ClientRecord, metrics domain.DerivedMetrics, scores domain.ScoreCard) ([]domain.Advisory, error) {
	if len(e.rules) == 0 {
		return nil, nil
	}

	activation := Activation(record, metrics, scores)
	var advisories []domain.Advisory

	for _, rule := range e.rules {
		if err := ctx.Err(); err != nil {
			return advisories, err
		}

		out, _, err := rule.Program.Eval(activation)
		if err != nil {
			e.logger.Warnf("rule %s for %s: evaluation error: %v", rule.Config.ID, record.Name, err)
			continue
		}
		fired, ok := out.(types.Bool)
		if !ok {
			e.logger.Warnf("rule %s for %s: expected bool, got %v", rule.Config.ID, record.Name, out.Type())
			continue
		}
		if fired {
			advisories = append(advisories, toAdvisory(rule.Config))
		}
	}
	return advisories, nil
}

// Activation builds the CEL variables for one client
func Activation(record domain.ClientRecord, metrics domain.DerivedMetrics, scores domain.ScoreCard) map[string]any {
	return map[string]any{
		"metrics": map[string]float64{
			"net_worth":         metrics.NetWorth.InexactFloat64(),
			"savings_rate":      metrics.SavingsRate.InexactFloat64(),
			"debt_ratio":        metrics.DebtRatio.InexactFloat64(),
			"emergency_months":  metrics.EmergencyMonths.InexactFloat64(),
			"total_assets":      metrics.TotalAssets.InexactFloat64(),
			"total_liabilities": metrics.TotalLiabilities.InexactFloat64(),
			"portfolio_value":   metrics.PortfolioValue.InexactFloat64(),
		},
		"scores": map[string]int64{
			"investment":     int64(scores.Investment),
			"debt":           int64(scores.Debt),
			"budgeting":      int64(scores.Budgeting),
			"emergency_fund": int64(scores.EmergencyFund),
		},
		"income":   record.Income.InexactFloat64(),
		"expenses": record.Expenses.InexactFloat64(),
	}
}

func (e *Engine) compileRule(cfg domain.RuleConfig) (*CompiledRule, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("rule id is required")
	}
	if strings.TrimSpace(cfg.Expression) == "" {
		return nil, fmt.Errorf("rule %s: expression is required", cfg.ID)
	}

	ast, issues := e.env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile rule %s: %w", cfg.ID, issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("rule %s: expression must return bool, got %s", cfg.ID, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for rule %s: %w", cfg.ID, err)
	}

	if cfg.Severity == "" {
		cfg.Severity = domain.SeverityWarning
	}
	if cfg.Title == "" {
		cfg.Title = cfg.ID
	}
	return &CompiledRule{Config: cfg, Program: program}, nil
}

func toAdvisory(cfg domain.RuleConfig) domain.Advisory {
	msg := cfg.Message
	if msg == "" {
		msg = cfg.Title
	}
	return domain.Advisory{
		Code:     cfg.ID,
		Severity: cfg.Severity,
		Title:    cfg.Title,
		Message:  msg,
	}
}
