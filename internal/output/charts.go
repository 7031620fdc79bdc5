package output

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// Bar is one row of the asset allocation chart
type Bar struct {
	Label  string
	Amount decimal.Decimal
	Length int
}

// AssetBars scales each category against the largest one so the largest fills width
// cells. Categories keep declaration order.
func AssetBars(m domain.CategoryMap, width int) []Bar {
	entries := m.Entries()
	largest := decimal.Zero
	for _, e := range entries {
		if e.Amount.GreaterThan(largest) {
			largest = e.Amount
		}
	}

	bars := make([]Bar, 0, len(entries))
	for _, e := range entries {
		length := 0
		if largest.IsPositive() {
			length = int(e.Amount.Mul(decimal.NewFromInt(int64(width))).Div(largest).Round(0).IntPart())
		}
		bars = append(bars, Bar{Label: e.Name, Amount: e.Amount, Length: length})
	}
	return bars
}

// Slice is one category's share of the portfolio
type Slice struct {
	Label   string
	Amount  decimal.Decimal
	Percent decimal.Decimal // rounded to one decimal
}

// PortfolioShares returns each holding's share of the portfolio total in declaration
// order
func PortfolioShares(m domain.CategoryMap) []Slice {
	entries := m.Entries()
	slices := make([]Slice, 0, len(entries))
	for _, e := range entries {
		slices = append(slices, Slice{
			Label:   e.Name,
			Amount:  e.Amount,
			Percent: m.Share(e.Name).Mul(hundred).Round(1),
		})
	}
	return slices
}

// ScoreBarLength returns the filled cells of a width-cell progress bar. Scores outside
// [0,100] are drawn as an empty or full bar.
func ScoreBarLength(score, width int) int {
	switch {
	case score <= 0:
		return 0
	case score >= 100:
		return width
	}
	return score * width / 100
}

// labelWidth returns the width of the longest label, for column alignment
func labelWidth[T Bar | Slice](items []T, label func(T) string) int {
	w := 0
	for _, it := range items {
		if n := len([]rune(label(it))); n > w {
			w = n
		}
	}
	return w
}
