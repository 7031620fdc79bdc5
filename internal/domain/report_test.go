package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"info", SeverityInfo, false},
		{"INFO", SeverityInfo, false},
		{" Warning ", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"error", SeverityError, false},
		{"fatal", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSeverity_DecodesFromYAML(t *testing.T) {
	var rule RuleConfig
	err := yaml.Unmarshal([]byte("id: x\nseverity: Warn\nexpression: 'true'\n"), &rule)
	require.NoError(t, err)

	assert.Equal(t, SeverityWarning, rule.Severity)
	assert.Equal(t, "WARNING", rule.Severity.String())

	err = yaml.Unmarshal([]byte("severity: loud\n"), &rule)
	assert.Error(t, err)
}

func TestScoreCard_Entries(t *testing.T) {
	s := ScoreCard{Investment: 58, Debt: 16, Budgeting: 33, EmergencyFund: 25}
	entries := s.Entries()

	require.Len(t, entries, 4)
	assert.Equal(t, ScoreEntry{Label: "Investment Score", Value: 58}, entries[0])
	assert.Equal(t, ScoreEntry{Label: "Emergency Fund Score", Value: 25}, entries[3])
}

func TestClientReport_ErrorText(t *testing.T) {
	ok := ClientReport{}
	assert.True(t, ok.OK())
	assert.Empty(t, ok.ErrorText())

	bad := ClientReport{Err: &InvalidRecordError{Client: "X", Field: "income", Value: decimal.Zero, Reason: "must be positive"}}
	assert.False(t, bad.OK())
	assert.Equal(t, "client X: income must be positive (got 0)", bad.ErrorText())
}

func TestTypedErrors(t *testing.T) {
	var err error = &MalformedCategoryMapError{Client: "X", Map: "assets", Category: "Cash", Value: decimal.NewFromInt(-1)}
	assert.True(t, errors.Is(err, ErrMalformedCategoryMap))
	assert.Equal(t, `client X: assets: category "Cash" cannot be negative (got -1)`, err.Error())

	err = &MalformedCategoryMapError{Map: "portfolio"}
	assert.Equal(t, "portfolio: category name cannot be empty", err.Error())

	err = &PortfolioMismatchError{Client: "X", Category: "Crypto", Missing: true}
	assert.True(t, errors.Is(err, ErrPortfolioMismatch))
	assert.False(t, errors.Is(err, ErrInvalidRecord))
}

func TestScoringPolicy(t *testing.T) {
	p := DefaultScoringPolicy()
	require.NoError(t, p.Validate())

	filled := ScoringPolicy{HighDebtThreshold: decimal.NewFromFloat(0.5)}.WithDefaults()
	assert.True(t, filled.HighDebtThreshold.Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, filled.EmergencyTargetMonths.Equal(decimal.NewFromInt(6)))

	bad := p
	bad.LowSavingsThreshold = decimal.NewFromFloat(1.5)
	assert.Error(t, bad.Validate())

	bad = p
	bad.EmergencyTargetMonths = decimal.NewFromInt(-1)
	assert.Error(t, bad.Validate())

	bad = p
	bad.HighDebtThreshold = decimal.Zero
	assert.Error(t, bad.Validate())
}

func TestScoringPolicy_YAML(t *testing.T) {
	var p ScoringPolicy
	input := "low_savings_threshold: 0.25\nemergency_target_months: 3\nclamp_budgeting: true\n"
	require.NoError(t, yaml.Unmarshal([]byte(input), &p))

	assert.Equal(t, "0.25", p.LowSavingsThreshold.String())
	assert.True(t, p.ClampBudgeting)
	assert.True(t, p.HighDebtThreshold.IsZero(), "omitted threshold stays zero until WithDefaults")
}
