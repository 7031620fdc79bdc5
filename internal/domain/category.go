package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Category is a single named amount inside a CategoryMap
type Category struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// CategoryMap maps free-form category names (Cash, Equity, Home Loan, ...) to amounts.
// Categories keep the order in which they were declared so charts render the way the
// client book lists them.
type CategoryMap struct {
	order  []string
	values map[string]decimal.Decimal
}

// NewCategoryMap builds a map from categories in declaration order. A repeated name
// overwrites the earlier amount but keeps its position.
func NewCategoryMap(categories ...Category) CategoryMap {
	var m CategoryMap
	for _, c := range categories {
		m.Set(c.Name, c.Amount)
	}
	return m
}

// Set stores amount under name, appending name to the order if it is new
func (m *CategoryMap) Set(name string, amount decimal.Decimal) {
	if m.values == nil {
		m.values = make(map[string]decimal.Decimal)
	}
	if _, ok := m.values[name]; !ok {
		m.order = append(m.order, name)
	}
	m.values[name] = amount
}

// Get returns the amount stored under name
func (m CategoryMap) Get(name string) (decimal.Decimal, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of categories
func (m CategoryMap) Len() int {
	return len(m.order)
}

// Categories returns the category names in declaration order
func (m CategoryMap) Categories() []string {
	return append([]string(nil), m.order...)
}

// Entries returns the categories with their amounts in declaration order
func (m CategoryMap) Entries() []Category {
	entries := make([]Category, 0, len(m.order))
	for _, name := range m.order {
		entries = append(entries, Category{Name: name, Amount: m.values[name]})
	}
	return entries
}

// SortedByAmount returns the entries ordered from largest to smallest amount.
// Ties keep declaration order.
func (m CategoryMap) SortedByAmount() []Category {
	entries := m.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	return entries
}

// Total sums every amount in the map
func (m CategoryMap) Total() decimal.Decimal {
	total := decimal.Zero
	for _, name := range m.order {
		total = total.Add(m.values[name])
	}
	return total
}

// Share returns the fraction (0..1) of the total held by name. An empty or zero-total
// map yields zero.
func (m CategoryMap) Share(name string) decimal.Decimal {
	total := m.Total()
	if total.IsZero() {
		return decimal.Zero
	}
	return m.values[name].Div(total)
}

// Clone returns an independent copy
func (m CategoryMap) Clone() CategoryMap {
	c := CategoryMap{
		order:  append([]string(nil), m.order...),
		values: make(map[string]decimal.Decimal, len(m.values)),
	}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Delete removes name from the map
func (m *CategoryMap) Delete(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// UnmarshalYAML decodes a YAML mapping while preserving key order
func (m *CategoryMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: category map must be a mapping", node.Line)
	}
	*m = CategoryMap{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var amount decimal.Decimal
		if err := valueNode.Decode(&amount); err != nil {
			return fmt.Errorf("line %d: category %q: %w", valueNode.Line, keyNode.Value, err)
		}
		if _, dup := m.values[keyNode.Value]; dup {
			return fmt.Errorf("line %d: duplicate category %q", keyNode.Line, keyNode.Value)
		}
		m.Set(keyNode.Value, amount)
	}
	return nil
}

// MarshalYAML encodes the map as an ordered YAML mapping
func (m CategoryMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range m.order {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: m.values[name].String()},
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object while preserving key order
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category map must be a JSON object")
	}

	*m = CategoryMap{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)

		var amount decimal.Decimal
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		if _, dup := m.values[name]; dup {
			return fmt.Errorf("duplicate category %q", name)
		}
		m.Set(name, amount)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the map as an ordered JSON object
func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(m.values[name].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
