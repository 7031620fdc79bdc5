package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for display when a client book does not name one
const DefaultCurrency = "INR"

// ClientRecord holds one client's raw annual figures. It is never mutated by the
// calculation engine.
type ClientRecord struct {
	Name          string          `yaml:"name" json:"name"`
	Income        decimal.Decimal `yaml:"income" json:"income"`     // annual
	Expenses      decimal.Decimal `yaml:"expenses" json:"expenses"` // annual
	Assets        CategoryMap     `yaml:"assets" json:"assets"`
	Liabilities   CategoryMap     `yaml:"liabilities" json:"liabilities"`
	Portfolio     CategoryMap     `yaml:"portfolio" json:"portfolio"`
	EmergencyFund decimal.Decimal `yaml:"emergency_fund" json:"emergency_fund"` // lump sum
	Currency      string          `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// DeepCopy returns a copy whose category maps can be changed without touching r
func (r ClientRecord) DeepCopy() ClientRecord {
	c := r
	c.Assets = r.Assets.Clone()
	c.Liabilities = r.Liabilities.Clone()
	c.Portfolio = r.Portfolio.Clone()
	return c
}

// CurrencyCode returns the record's display currency, falling back to DefaultCurrency
func (r ClientRecord) CurrencyCode() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return r.Currency
}

// ClientBook is the full input document: clients plus the policy and rules used to
// score them
type ClientBook struct {
	Currency string         `yaml:"currency,omitempty" json:"currency,omitempty"`
	Policy   *ScoringPolicy `yaml:"policy,omitempty" json:"policy,omitempty"`
	Clients  []ClientRecord `yaml:"clients" json:"clients"`
	Rules    []RuleConfig   `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Names returns client names in book order
func (b *ClientBook) Names() []string {
	names := make([]string, 0, len(b.Clients))
	for _, c := range b.Clients {
		names = append(names, c.Name)
	}
	return names
}

// Find returns the client with the given name
func (b *ClientBook) Find(name string) (ClientRecord, bool) {
	for _, c := range b.Clients {
		if c.Name == name {
			return c, true
		}
	}
	return ClientRecord{}, false
}

// EffectivePolicy returns the book's policy or the defaults when none is set
func (b *ClientBook) EffectivePolicy() ScoringPolicy {
	if b.Policy == nil {
		return DefaultScoringPolicy()
	}
	return *b.Policy
}
