package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScoringPolicy holds the advisory thresholds and the budgeting clamp switch.
// A zero threshold means "use the default": omitted and explicit 0 are treated
// alike, so a threshold cannot be switched off by setting it to 0.
type ScoringPolicy struct {
	LowSavingsThreshold   decimal.Decimal `yaml:"low_savings_threshold" json:"low_savings_threshold"`
	EmergencyTargetMonths decimal.Decimal `yaml:"emergency_target_months" json:"emergency_target_months"`
	HighDebtThreshold     decimal.Decimal `yaml:"high_debt_threshold" json:"high_debt_threshold"`

	// ClampBudgeting bounds the budgeting score to [0,100] like the other three.
	// Off by default: an uncapped budgeting score is the historical behaviour.
	ClampBudgeting bool `yaml:"clamp_budgeting" json:"clamp_budgeting"`
}

// DefaultScoringPolicy returns the thresholds the dashboard has always used
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		LowSavingsThreshold:   decimal.NewFromFloat(0.20),
		EmergencyTargetMonths: decimal.NewFromInt(6),
		HighDebtThreshold:     decimal.NewFromFloat(0.40),
	}
}

// WithDefaults fills zero thresholds from DefaultScoringPolicy. Negative values are
// kept so Validate can reject them.
func (p ScoringPolicy) WithDefaults() ScoringPolicy {
	d := DefaultScoringPolicy()
	if p.LowSavingsThreshold.IsZero() {
		p.LowSavingsThreshold = d.LowSavingsThreshold
	}
	if p.EmergencyTargetMonths.IsZero() {
		p.EmergencyTargetMonths = d.EmergencyTargetMonths
	}
	if p.HighDebtThreshold.IsZero() {
		p.HighDebtThreshold = d.HighDebtThreshold
	}
	return p
}

// Validate checks that every threshold is usable
func (p ScoringPolicy) Validate() error {
	if p.LowSavingsThreshold.LessThanOrEqual(decimal.Zero) || p.LowSavingsThreshold.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("low savings threshold must be in (0, 1]")
	}
	if p.EmergencyTargetMonths.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("emergency target months must be positive")
	}
	if p.HighDebtThreshold.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("high debt threshold must be positive")
	}
	return nil
}
