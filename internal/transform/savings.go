package transform

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ScaleEmergencyFund multiplies the emergency fund by Factor.
type ScaleEmergencyFund struct {
	Factor decimal.Decimal
}

func (sf *ScaleEmergencyFund) Name() string {
	return "scale_emergency_fund"
}

func (sf *ScaleEmergencyFund) Description() string {
	return fmt.Sprintf("Multiply the emergency fund by %s", sf.Factor.String())
}

func (sf *ScaleEmergencyFund) Validate(base domain.ClientRecord) error {
	if sf.Factor.IsNegative() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("factor cannot be negative, got %s", sf.Factor.String()), nil)
	}
	return nil
}

func (sf *ScaleEmergencyFund) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	modified := base.DeepCopy()
	modified.EmergencyFund = base.EmergencyFund.Mul(sf.Factor)
	return modified, nil
}

// SetEmergencyFundMonths sizes the emergency fund to cover Months of expenses.
type SetEmergencyFundMonths struct {
	Months decimal.Decimal
}

func (sm *SetEmergencyFundMonths) Name() string {
	return "emergency_fund_months"
}

func (sm *SetEmergencyFundMonths) Description() string {
	return fmt.Sprintf("Size the emergency fund to %s months of expenses", sm.Months.String())
}

func (sm *SetEmergencyFundMonths) Validate(base domain.ClientRecord) error {
	if sm.Months.IsNegative() {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("months cannot be negative, got %s", sm.Months.String()), nil)
	}
	if !base.Expenses.IsPositive() {
		return NewTransformError(sm.Name(), "validate", "client has no expenses to cover", nil)
	}
	return nil
}

func (sm *SetEmergencyFundMonths) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	modified := base.DeepCopy()
	modified.EmergencyFund = base.Expenses.Mul(sm.Months).Div(twelve)
	return modified, nil
}

// InvestAsset moves a share of one asset category into an invested category, which
// is added to both assets and portfolio.
type InvestAsset struct {
	From  string
	To    string
	Share decimal.Decimal // fraction of From to move, in (0, 1]
}

func (ia *InvestAsset) Name() string {
	return "invest_asset"
}

func (ia *InvestAsset) Description() string {
	pct := ia.Share.Mul(decimal.NewFromInt(100)).String()
	return fmt.Sprintf("Invest %s%% of %s in %s", pct, ia.source(), ia.To)
}

func (ia *InvestAsset) Validate(base domain.ClientRecord) error {
	if ia.To == "" {
		return NewTransformError(ia.Name(), "validate", "target category cannot be empty", nil)
	}
	if ia.To == ia.source() {
		return NewTransformError(ia.Name(), "validate", "source and target categories must differ", nil)
	}
	if ia.Share.LessThanOrEqual(decimal.Zero) || ia.Share.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(ia.Name(), "validate", fmt.Sprintf("share must be in (0, 1], got %s", ia.Share.String()), nil)
	}

	available, ok := base.Assets.Get(ia.source())
	if !ok {
		return NewTransformError(ia.Name(), "validate", fmt.Sprintf("asset %s not found", ia.source()), nil)
	}
	if !available.IsPositive() {
		return NewTransformError(ia.Name(), "validate", fmt.Sprintf("asset %s is empty", ia.source()), nil)
	}
	return nil
}

func (ia *InvestAsset) Apply(base domain.ClientRecord) (domain.ClientRecord, error) {
	modified := base.DeepCopy()

	available, _ := modified.Assets.Get(ia.source())
	amount := available.Mul(ia.Share)
	withdraw(&modified, ia.source(), amount)

	asset, _ := modified.Assets.Get(ia.To)
	modified.Assets.Set(ia.To, asset.Add(amount))
	held, _ := modified.Portfolio.Get(ia.To)
	modified.Portfolio.Set(ia.To, held.Add(amount))

	return modified, nil
}

func (ia *InvestAsset) source() string {
	if ia.From == "" {
		return DefaultPayingAsset
	}
	return ia.From
}
