package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RecordTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("repay_liability", createRepayLiability)
	registry.Register("scale_emergency_fund", createScaleEmergencyFund)
	registry.Register("emergency_fund_months", createSetEmergencyFundMonths)
	registry.Register("invest_asset", createInvestAsset)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RecordTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "repay_liability:category=Car Loan,amount=50000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RecordTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseCustomTemplate builds an ad-hoc template from transform specs separated by ';'.
// Example: "scale_expenses:factor=0.9;emergency_fund_months:months=6"
func (r *TransformRegistry) ParseCustomTemplate(name, specs string) (Template, error) {
	tmpl := Template{Name: name, Category: CategoryCombined, Description: "Custom: " + specs}
	for _, spec := range strings.Split(specs, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		tr, err := r.ParseTransformSpec(spec)
		if err != nil {
			return Template{}, fmt.Errorf("custom template %s: %w", name, err)
		}
		tmpl.Transforms = append(tmpl.Transforms, tr)
	}
	if len(tmpl.Transforms) == 0 {
		return Template{}, fmt.Errorf("custom template %s has no transforms", name)
	}
	return tmpl, nil
}

// Factory functions for each transform

func createScaleExpenses(params map[string]string) (RecordTransform, error) {
	factor, err := requiredDecimal("scale_expenses", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Factor: factor}, nil
}

func createScaleIncome(params map[string]string) (RecordTransform, error) {
	factor, err := requiredDecimal("scale_income", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Factor: factor}, nil
}

func createRepayLiability(params map[string]string) (RecordTransform, error) {
	rl := &RepayLiability{
		Category: params["category"],
		From:     params["from"],
	}

	if s, ok := params["smallest"]; ok {
		smallest, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid smallest value: %w", err)
		}
		rl.Smallest = smallest
	}
	if !rl.Smallest && rl.Category == "" {
		return nil, fmt.Errorf("repay_liability requires 'category' or 'smallest=true' parameter")
	}

	if s, ok := params["amount"]; ok {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
		rl.Amount = amount
	}
	return rl, nil
}

func createScaleEmergencyFund(params map[string]string) (RecordTransform, error) {
	factor, err := requiredDecimal("scale_emergency_fund", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleEmergencyFund{Factor: factor}, nil
}

func createSetEmergencyFundMonths(params map[string]string) (RecordTransform, error) {
	months, err := requiredDecimal("emergency_fund_months", "months", params)
	if err != nil {
		return nil, err
	}
	return &SetEmergencyFundMonths{Months: months}, nil
}

func createInvestAsset(params map[string]string) (RecordTransform, error) {
	to, ok := params["to"]
	if !ok {
		return nil, fmt.Errorf("invest_asset requires 'to' parameter")
	}
	share, err := requiredDecimal("invest_asset", "share", params)
	if err != nil {
		return nil, err
	}
	return &InvestAsset{From: params["from"], To: to, Share: share}, nil
}

func requiredDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
