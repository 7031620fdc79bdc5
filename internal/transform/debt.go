package transform

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPayingAsset is the asset category used to repay debt or fund investments
const DefaultPayingAsset = "Cash"

// RepayLiability pays down a liability from a liquid asset category.
// With Smallest set the smallest outstanding liability is chosen, otherwise Category.
// A zero Amount repays as much as the asset allows.
type RepayLiability struct {
	Category string
	Smallest bool
	From     string
	Amount   decimal.Decimal
}

func (rl *RepayLiability) Name() string {
	return "repay_liability"
}

func (rl *RepayLiability) Description() string {
	target := rl.Category
	if rl.Smallest {
		target = "the smallest liability"
	}
	if rl.Amount.IsPositive() {
		return fmt.Sprintf("Repay %s of %s from %s", rl.Amount.String(), target, rl.source())
	}
	return fmt.Sprintf("Repay %s from %s", target, rl.source())
}

func (rl *RepayLiability) Validate(base domain.ClientRecord) error {
	if rl.Amount.IsNegative() {
		return NewTransformError(rl.Name(), "validate", "amount cannot be negative", nil)
	}

	if _, err := rl.target(base); err != nil {
		return err
	}

	available, ok := base.Assets.Get(rl.source())
	if !ok {
		return NewTransformError(rl.Name(), "validate", fmt.Sprintf("asset %s not found", rl.source()), nil)
	}
	if !available.IsPositive() {
		return NewTransformError(rl.Name(), "validate", fmt.Sprintf("asset %s has nothing to repay with", rl.source()), nil)
	}
	return nil
}

func (rl *RepayLiability) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	name, err := rl.target(base)
	if err != nil {
		return domain.ClientRecord{}, err
	}

	modified := base.DeepCopy()
	owed, _ := modified.Liabilities.Get(name)
	available, _ := modified.Assets.Get(rl.source())

	payment := decimal.Min(owed, available)
	if rl.Amount.IsPositive() {
		payment = decimal.Min(payment, rl.Amount)
	}

	if owed.Equal(payment) {
		modified.Liabilities.Delete(name)
	} else {
		modified.Liabilities.Set(name, owed.Sub(payment))
	}
	withdraw(&modified, rl.source(), payment)

	return modified, nil
}

func (rl *RepayLiability) source() string {
	if rl.From == "" {
		return DefaultPayingAsset
	}
	return rl.From
}

func (rl *RepayLiability) target(base domain.ClientRecord) (string, error) {
	if rl.Smallest {
		entries := base.Liabilities.SortedByAmount()
		if len(entries) == 0 {
			return "", NewTransformError(rl.Name(), "validate", "client has no liabilities", nil)
		}
		return entries[len(entries)-1].Name, nil
	}

	if rl.Category == "" {
		return "", NewTransformError(rl.Name(), "validate", "liability category cannot be empty", nil)
	}
	if _, ok := base.Liabilities.Get(rl.Category); !ok {
		return "", NewTransformError(rl.Name(), "validate", fmt.Sprintf("liability %s not found", rl.Category), nil)
	}
	return rl.Category, nil
}

// withdraw takes amount out of an asset category, keeping any portfolio holding of
// the same category within the remaining asset value
func withdraw(record *domain.ClientRecord, category string, amount decimal.Decimal) {
	current, _ := record.Assets.Get(category)
	remaining := current.Sub(amount)
	record.Assets.Set(category, remaining)

	if held, ok := record.Portfolio.Get(category); ok && held.GreaterThan(remaining) {
		record.Portfolio.Set(category, remaining)
	}
}
