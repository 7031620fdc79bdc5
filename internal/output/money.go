package output

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency displays an amount with the currency symbol and thousands
// separators, e.g. ₹1,200,000.00. Unknown codes fall back to "XYZ 12.00".
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = domain.DefaultCurrency
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", code, amount.StringFixed(2))
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// FormatPercentage displays a ratio as a percentage with one decimal (0.3333 -> 33.3%)
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(1) + "%"
}

// FormatMonths displays a month count with one decimal
func FormatMonths(months decimal.Decimal) string {
	return months.StringFixed(1) + " months"
}

// FormatScore displays a score as "58/100"
func FormatScore(score int) string {
	return fmt.Sprintf("%d/100", score)
}
