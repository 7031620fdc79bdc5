package transform

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleExpenses multiplies annual expenses by Factor (0.9 cuts spending by 10%).
type ScaleExpenses struct {
	Factor decimal.Decimal
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	return fmt.Sprintf("Multiply annual expenses by %s", se.Factor.String())
}

func (se *ScaleExpenses) Validate(base domain.ClientRecord) error {
	if se.Factor.LessThanOrEqual(decimal.Zero) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("factor must be positive, got %s", se.Factor.String()), nil)
	}
	return nil
}

func (se *ScaleExpenses) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	modified := base.DeepCopy()
	modified.Expenses = base.Expenses.Mul(se.Factor)
	return modified, nil
}

// ScaleIncome multiplies annual income by Factor (1.1 is a 10% raise).
type ScaleIncome struct {
	Factor decimal.Decimal
}

func (si *ScaleIncome) Name() string {
	return "scale_income"
}

func (si *ScaleIncome) Description() string {
	return fmt.Sprintf("Multiply annual income by %s", si.Factor.String())
}

func (si *ScaleIncome) Validate(base domain.ClientRecord) error {
	if si.Factor.LessThanOrEqual(decimal.Zero) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("factor must be positive, got %s", si.Factor.String()), nil)
	}
	return nil
}

func (si *ScaleIncome) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	modified := base.DeepCopy()
	modified.Income = base.Income.Mul(si.Factor)
	return modified, nil
}
