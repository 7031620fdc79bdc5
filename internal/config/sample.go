package config

import (
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// SampleBook returns the two demonstration clients shown when no client book is given
func SampleBook() *domain.ClientBook {
	return &domain.ClientBook{
		Currency: domain.DefaultCurrency,
		Clients: []domain.ClientRecord{
			{
				Name:     "John Doe",
				Income:   rs(1200000),
				Expenses: rs(800000),
				Assets: domain.NewCategoryMap(
					domain.Category{Name: "Cash", Amount: rs(200000)},
					domain.Category{Name: "FDs", Amount: rs(300000)},
					domain.Category{Name: "Equity", Amount: rs(400000)},
					domain.Category{Name: "MFs", Amount: rs(300000)},
					domain.Category{Name: "EPF", Amount: rs(200000)},
					domain.Category{Name: "Gold", Amount: rs(100000)},
					domain.Category{Name: "Real Estate", Amount: rs(1000000)},
				),
				Liabilities: domain.NewCategoryMap(
					domain.Category{Name: "Home Loan", Amount: rs(800000)},
					domain.Category{Name: "Car Loan", Amount: rs(200000)},
				),
				Portfolio: domain.NewCategoryMap(
					domain.Category{Name: "Equity", Amount: rs(400000)},
					domain.Category{Name: "MFs", Amount: rs(300000)},
				),
				EmergencyFund: rs(100000),
				Currency:      domain.DefaultCurrency,
			},
			{
				Name:     "Anita Sharma",
				Income:   rs(900000),
				Expenses: rs(550000),
				Assets: domain.NewCategoryMap(
					domain.Category{Name: "Cash", Amount: rs(100000)},
					domain.Category{Name: "FDs", Amount: rs(250000)},
					domain.Category{Name: "Equity", Amount: rs(250000)},
					domain.Category{Name: "MFs", Amount: rs(200000)},
					domain.Category{Name: "EPF", Amount: rs(150000)},
					domain.Category{Name: "Gold", Amount: rs(80000)},
					domain.Category{Name: "Real Estate", Amount: rs(800000)},
				),
				Liabilities: domain.NewCategoryMap(
					domain.Category{Name: "Home Loan", Amount: rs(500000)},
				),
				Portfolio: domain.NewCategoryMap(
					domain.Category{Name: "Equity", Amount: rs(250000)},
					domain.Category{Name: "MFs", Amount: rs(200000)},
				),
				EmergencyFund: rs(80000),
				Currency:      domain.DefaultCurrency,
			},
		},
	}
}

func rs(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
