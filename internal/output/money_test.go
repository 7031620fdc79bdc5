package output

import (
	"testing"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		code     string
		expected string
	}{
		{decimal.NewFromInt(1200000), "INR", "₹1,200,000.00"},
		{decimal.NewFromInt(-170000), "INR", "-₹170,000.00"},
		{decimal.RequireFromString("1234.567"), "USD", "$1,234.57"},
		{decimal.NewFromInt(5), "", "₹5.00"},
		{decimal.NewFromInt(12), "XYZ", "XYZ 12.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount, tt.code))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "33.3%", FormatPercentage(decimal.RequireFromString("0.33333")))
	assert.Equal(t, "-25.0%", FormatPercentage(decimal.RequireFromString("-0.25")))
	assert.Equal(t, "1.5 months", FormatMonths(decimal.NewFromFloat(1.5)))
	assert.Equal(t, "58/100", FormatScore(58))
}

func TestAssetBars(t *testing.T) {
	m := domain.NewCategoryMap(
		domain.Category{Name: "Cash", Amount: decimal.NewFromInt(250)},
		domain.Category{Name: "Real Estate", Amount: decimal.NewFromInt(1000)},
		domain.Category{Name: "Gold", Amount: decimal.Zero},
	)

	bars := AssetBars(m, 40)

	assert.Equal(t, []Bar{
		{Label: "Cash", Amount: decimal.NewFromInt(250), Length: 10},
		{Label: "Real Estate", Amount: decimal.NewFromInt(1000), Length: 40},
		{Label: "Gold", Amount: decimal.Zero, Length: 0},
	}, bars)

	assert.Empty(t, AssetBars(domain.CategoryMap{}, 40))
}

func TestPortfolioShares(t *testing.T) {
	m := domain.NewCategoryMap(
		domain.Category{Name: "Equity", Amount: decimal.NewFromInt(400000)},
		domain.Category{Name: "MFs", Amount: decimal.NewFromInt(300000)},
	)

	shares := PortfolioShares(m)

	assert.Len(t, shares, 2)
	assert.Equal(t, "57.1", shares[0].Percent.StringFixed(1))
	assert.Equal(t, "42.9", shares[1].Percent.StringFixed(1))
}

func TestScoreBarLength(t *testing.T) {
	assert.Equal(t, 0, ScoreBarLength(-25, 30))
	assert.Equal(t, 0, ScoreBarLength(0, 30))
	assert.Equal(t, 17, ScoreBarLength(58, 30))
	assert.Equal(t, 30, ScoreBarLength(100, 30))
	assert.Equal(t, 30, ScoreBarLength(140, 30))
}
