package calculation

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateRecord checks the preconditions of every formula: positive income and
// expenses, a non-negative emergency fund, and well-formed category maps.
func ValidateRecord(record domain.ClientRecord) error {
	if err := requirePositive(record.Name, "income", record.Income); err != nil {
		return err
	}
	if err := requirePositive(record.Name, "expenses", record.Expenses); err != nil {
		return err
	}
	if record.EmergencyFund.IsNegative() {
		return &domain.InvalidRecordError{
			Client: record.Name,
			Field:  "emergency_fund",
			Value:  record.EmergencyFund,
			Reason: "cannot be negative",
		}
	}

	maps := []struct {
		name string
		m    domain.CategoryMap
	}{
		{"assets", record.Assets},
		{"liabilities", record.Liabilities},
		{"portfolio", record.Portfolio},
	}
	for _, entry := range maps {
		if err := validateCategoryMap(record.Name, entry.name, entry.m); err != nil {
			return err
		}
	}
	return nil
}

// CheckPortfolioSubset verifies that every portfolio holding is also an asset and is
// not larger than that asset
func CheckPortfolioSubset(record domain.ClientRecord) error {
	for _, holding := range record.Portfolio.Entries() {
		asset, ok := record.Assets.Get(holding.Name)
		if !ok {
			return &domain.PortfolioMismatchError{
				Client:   record.Name,
				Category: holding.Name,
				Holding:  holding.Amount,
				Missing:  true,
			}
		}
		if holding.Amount.GreaterThan(asset) {
			return &domain.PortfolioMismatchError{
				Client:    record.Name,
				Category:  holding.Name,
				Holding:   holding.Amount,
				AssetHeld: asset,
			}
		}
	}
	return nil
}

func requirePositive(client, field string, v decimal.Decimal) error {
	if v.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidRecordError{
			Client: client,
			Field:  field,
			Value:  v,
			Reason: "must be positive",
		}
	}
	return nil
}

func validateCategoryMap(client, name string, m domain.CategoryMap) error {
	for _, c := range m.Entries() {
		if c.Name == "" || c.Amount.IsNegative() {
			return &domain.MalformedCategoryMapError{
				Client:   client,
				Map:      name,
				Category: c.Name,
				Value:    c.Amount,
			}
		}
	}
	return nil
}
