package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors matched with errors.Is
var (
	ErrInvalidRecord        = errors.New("invalid client record")
	ErrMalformedCategoryMap = errors.New("malformed category map")
	ErrPortfolioMismatch    = errors.New("portfolio is not a subset of assets")
)

// InvalidRecordError reports a scalar field that cannot feed the formulas, such as a
// zero income used as a divisor
type InvalidRecordError struct {
	Client string
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *InvalidRecordError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Field, e.Reason)
	if e.Client != "" {
		return fmt.Sprintf("client %s: %s (got %s)", e.Client, msg, e.Value.String())
	}
	return fmt.Sprintf("%s (got %s)", msg, e.Value.String())
}

func (e *InvalidRecordError) Unwrap() error { return ErrInvalidRecord }

// MalformedCategoryMapError reports a negative amount or an empty category name in
// assets, liabilities or portfolio
type MalformedCategoryMapError struct {
	Client   string
	Map      string
	Category string
	Value    decimal.Decimal
}

func (e *MalformedCategoryMapError) Error() string {
	prefix := ""
	if e.Client != "" {
		prefix = "client " + e.Client + ": "
	}
	if e.Category == "" {
		return fmt.Sprintf("%s%s: category name cannot be empty", prefix, e.Map)
	}
	return fmt.Sprintf("%s%s: category %q cannot be negative (got %s)", prefix, e.Map, e.Category, e.Value.String())
}

func (e *MalformedCategoryMapError) Unwrap() error { return ErrMalformedCategoryMap }

// PortfolioMismatchError reports a portfolio holding that is missing from assets or
// larger than the matching asset
type PortfolioMismatchError struct {
	Client    string
	Category  string
	Holding   decimal.Decimal
	AssetHeld decimal.Decimal
	Missing   bool
}

func (e *PortfolioMismatchError) Error() string {
	if e.Missing {
		return fmt.Sprintf("client %s: portfolio category %q is not listed in assets", e.Client, e.Category)
	}
	return fmt.Sprintf("client %s: portfolio category %q (%s) exceeds asset value (%s)",
		e.Client, e.Category, e.Holding.String(), e.AssetHeld.String())
}

func (e *PortfolioMismatchError) Unwrap() error { return ErrPortfolioMismatch }
