package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []RecordTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template categories used by GetTemplateHelp
const (
	CategoryBudget    = "Budget"
	CategoryDebt      = "Debt"
	CategoryEmergency = "Emergency Fund"
	CategoryInvesting = "Investing"
	CategoryCombined  = "Combination Strategies"
)

var templateCategories = []string{CategoryBudget, CategoryDebt, CategoryEmergency, CategoryInvesting, CategoryCombined}

// CreateBuiltInTemplates creates a template registry with common what-if adjustments
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "cut_expenses_10",
		Category:    CategoryBudget,
		Description: "Cut annual expenses by 10%",
		Transforms: []RecordTransform{
			&ScaleExpenses{Factor: decimal.NewFromFloat(0.9)},
		},
	})

	registry.Register(Template{
		Name:        "raise_income_10",
		Category:    CategoryBudget,
		Description: "Raise annual income by 10%",
		Transforms: []RecordTransform{
			&ScaleIncome{Factor: decimal.NewFromFloat(1.1)},
		},
	})

	registry.Register(Template{
		Name:        "repay_smallest_loan",
		Category:    CategoryDebt,
		Description: "Repay the smallest liability from cash",
		Transforms: []RecordTransform{
			&RepayLiability{Smallest: true, From: DefaultPayingAsset},
		},
	})

	registry.Register(Template{
		Name:        "double_emergency_fund",
		Category:    CategoryEmergency,
		Description: "Double the emergency fund",
		Transforms: []RecordTransform{
			&ScaleEmergencyFund{Factor: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "emergency_fund_6m",
		Category:    CategoryEmergency,
		Description: "Size the emergency fund to 6 months of expenses",
		Transforms: []RecordTransform{
			&SetEmergencyFundMonths{Months: decimal.NewFromInt(6)},
		},
	})

	registry.Register(Template{
		Name:        "invest_cash",
		Category:    CategoryInvesting,
		Description: "Invest half of the cash holdings in equity",
		Transforms: []RecordTransform{
			&InvestAsset{From: DefaultPayingAsset, To: "Equity", Share: decimal.NewFromFloat(0.5)},
		},
	})

	registry.Register(Template{
		Name:        "lean_budget",
		Category:    CategoryCombined,
		Description: "Cut expenses 10% + size the emergency fund to 6 months",
		Transforms: []RecordTransform{
			&ScaleExpenses{Factor: decimal.NewFromFloat(0.9)},
			&SetEmergencyFundMonths{Months: decimal.NewFromInt(6)},
		},
	})

	registry.Register(Template{
		Name:        "debt_first",
		Category:    CategoryCombined,
		Description: "Repay the smallest liability + raise income 10%",
		Transforms: []RecordTransform{
			&RepayLiability{Smallest: true, From: DefaultPayingAsset},
			&ScaleIncome{Factor: decimal.NewFromFloat(1.1)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base record
func ApplyTemplate(base domain.ClientRecord, template Template) (domain.ClientRecord, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	byCategory := make(map[string][]Template)
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := t.Category
		if category == "" {
			category = CategoryCombined
		}
		byCategory[category] = append(byCategory[category], t)
	}

	for _, category := range templateCategories {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finhealth compare clients.yaml --base \"John Doe\" --with cut_expenses_10,repay_smallest_loan\n")
	sb.WriteString("  finhealth compare --base \"Anita Sharma\" --with lean_budget,debt_first\n")

	return sb.String()
}
