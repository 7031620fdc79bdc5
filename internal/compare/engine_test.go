package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompareEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewMetricsEngine())
}

func TestCompareWhatIf(t *testing.T) {
	ce := newCompareEngine()

	compSet, err := ce.CompareWhatIf(context.Background(), config.SampleBook(), "John Doe",
		[]string{"repay_smallest_loan", "invest_cash", "emergency_fund_6m"})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "John Doe", compSet.BaseName)
	assert.Equal(t, domain.ScoreCard{Investment: 58, Debt: 16, Budgeting: 33, EmergencyFund: 25}, compSet.BaseResult.Scores)
	require.Len(t, compSet.AlternativeResults, 3)

	repay := compSet.AlternativeResults[0]
	assert.Equal(t, "John Doe_repay_smallest_loan", repay.Name)
	assert.Equal(t, KindWhatIf, repay.Kind)
	assert.Equal(t, 33, repay.Scores.Debt, "debt ratio drops to 800000/1200000")
	assert.Equal(t, 17, repay.ScoreDiff.Debt)
	assert.True(t, repay.NetWorthDiff.IsZero(), "repaying from cash leaves net worth unchanged")

	invest := compSet.AlternativeResults[1]
	assert.Equal(t, 66, invest.Scores.Investment)
	assert.Equal(t, 8, invest.ScoreDiff.Investment)

	emergency := compSet.AlternativeResults[2]
	assert.Equal(t, 100, emergency.Scores.EmergencyFund)
	assert.Equal(t, -1, emergency.AdvisoryDiff, "the emergency fund advisory goes away")
	assert.True(t, emergency.EmergencyMonthsDiff.Equal(decimal.NewFromFloat(4.5)))

	assert.Contains(t, compSet.Recommendations, "Best Investment Score: John Doe_invest_cash raises it from 58 to 66 (+8)")
	assert.Contains(t, compSet.Recommendations, "Best Debt Score: John Doe_repay_smallest_loan raises it from 16 to 33 (+17)")
	assert.Contains(t, compSet.Recommendations, "Fewest Advisories: John Doe_emergency_fund_6m has 1 (base has 2)")
}

func TestCompareWhatIf_DoesNotChangeBook(t *testing.T) {
	book := config.SampleBook()
	_, err := newCompareEngine().CompareWhatIf(context.Background(), book, "John Doe", []string{"repay_smallest_loan"})
	require.NoError(t, err)

	john, _ := book.Find("John Doe")
	assert.True(t, john.Liabilities.Total().Equal(decimal.NewFromInt(1000000)))
}

func TestCompareWhatIf_Errors(t *testing.T) {
	ce := newCompareEngine()
	book := config.SampleBook()

	_, err := ce.CompareWhatIf(context.Background(), book, "Nobody", nil)
	assert.ErrorContains(t, err, "base client Nobody not found")

	_, err = ce.CompareWhatIf(context.Background(), book, "John Doe", []string{"retire_early"})
	assert.ErrorContains(t, err, "template retire_early not found")

	_, err = ce.CompareWhatIf(context.Background(), nil, "John Doe", nil)
	assert.Error(t, err)

	book.Clients[0].Income = decimal.Zero
	_, err = ce.CompareWhatIf(context.Background(), book, "John Doe", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestCompareWhatIf_TemplateCannotApply(t *testing.T) {
	book := config.SampleBook()
	book.Clients[1].Assets.Delete("Cash")

	_, err := newCompareEngine().CompareWhatIf(context.Background(), book, "Anita Sharma", []string{"invest_cash"})
	assert.ErrorContains(t, err, "failed to apply template invest_cash")
}

func TestCompareClients(t *testing.T) {
	compSet, err := newCompareEngine().CompareClients(context.Background(), config.SampleBook(), "John Doe", nil)
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 1)
	anita := compSet.AlternativeResults[0]
	assert.Equal(t, "Anita Sharma", anita.Name)
	assert.Equal(t, KindClient, anita.Kind)
	assert.True(t, anita.NetWorthDiff.Equal(decimal.NewFromInt(-170000)))
	assert.Equal(t, domain.ScoreCard{Investment: -8, Debt: 28, Budgeting: 5, EmergencyFund: 4}, anita.ScoreDiff)
	assert.Equal(t, 0, anita.AdvisoryDiff)

	assert.Contains(t, compSet.Recommendations, "Best Debt Score: Anita Sharma raises it from 16 to 44 (+28)")
	for _, rec := range compSet.Recommendations {
		assert.NotContains(t, rec, "Investment Score", "Anita does not beat the base on investment")
		assert.NotContains(t, rec, "Net Worth")
	}
}

func TestCompareClients_InvalidAlternativeIsReported(t *testing.T) {
	book := config.SampleBook()
	broken := book.Clients[1].DeepCopy()
	broken.Name = "Broken"
	broken.Expenses = decimal.Zero
	book.Clients = append(book.Clients, broken)

	compSet, err := newCompareEngine().CompareClients(context.Background(), book, "John Doe", []string{"Broken", "Anita Sharma"})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 2)
	assert.False(t, compSet.AlternativeResults[0].OK())
	assert.Contains(t, compSet.AlternativeResults[0].Error, "expenses must be positive")
	assert.True(t, compSet.AlternativeResults[1].OK())

	_, err = newCompareEngine().CompareClients(context.Background(), book, "John Doe", []string{"Ghost"})
	assert.ErrorContains(t, err, "client Ghost not found")
}

func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCompareEngine().CompareClients(ctx, config.SampleBook(), "John Doe", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	compSet := &ComparisonSet{BaseResult: &ComparisonResult{Name: "A"}}
	assert.Empty(t, GenerateRecommendations(compSet))

	compSet = &ComparisonSet{
		BaseResult:         &ComparisonResult{Name: "A", Error: "bad"},
		AlternativeResults: []ComparisonResult{{Name: "B"}},
	}
	assert.Empty(t, GenerateRecommendations(compSet))
}
