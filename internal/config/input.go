package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/rules"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of client book files
type InputParser struct {
	// Strict rejects books whose portfolios are not a subset of assets and
	// books containing records the engine would refuse
	Strict bool
	Logger calculation.Logger
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Logger: calculation.NopLogger{}}
}

// ValidationError collects every problem found in a client book
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As
func (e *ValidationError) Unwrap() []error { return e.Errors }

// LoadFromFile loads a client book from a YAML or JSON file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.ClientBook, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	return ip.Parse(data, format)
}

// Parse decodes a client book and checks its structure. Record-level problems such as
// a zero income are left to the engine unless the parser is strict.
func (ip *InputParser) Parse(data []byte, format string) (*domain.ClientBook, error) {
	var book domain.ClientBook
	switch format {
	case "json":
		if err := json.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported client book format %q", format)
	}

	Normalize(&book)

	if err := ip.validateStructure(&book); err != nil {
		return nil, fmt.Errorf("client book validation failed: %w", err)
	}

	if ip.Strict {
		if err := ip.ValidateBook(&book); err != nil {
			return nil, fmt.Errorf("client book validation failed: %w", err)
		}
	} else {
		for _, c := range book.Clients {
			if err := calculation.CheckPortfolioSubset(c); err != nil {
				ip.logger().Warnf("%v", err)
			}
		}
	}

	return &book, nil
}

// Normalize upper-cases currency codes, lets clients inherit the book currency and
// fills missing policy thresholds. A threshold written as 0 counts as missing.
func Normalize(book *domain.ClientBook) {
	book.Currency = strings.ToUpper(strings.TrimSpace(book.Currency))
	if book.Currency == "" {
		book.Currency = domain.DefaultCurrency
	}
	for i := range book.Clients {
		c := &book.Clients[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
		if c.Currency == "" {
			c.Currency = book.Currency
		}
	}
	if book.Policy != nil {
		p := book.Policy.WithDefaults()
		book.Policy = &p
	}
}

// ValidateBook runs every check on a book: structure, every client record, the
// scoring policy and custom rules. Problems are collected rather than stopping at the
// first one. Portfolio subset violations are only reported when the parser is strict.
func (ip *InputParser) ValidateBook(book *domain.ClientBook) error {
	if err := ip.validateStructure(book); err != nil {
		return err
	}

	var errs []error
	for i, c := range book.Clients {
		if err := calculation.ValidateRecord(c); err != nil {
			errs = append(errs, fmt.Errorf("client %d: %w", i, err))
			continue
		}
		if ip.Strict {
			if err := calculation.CheckPortfolioSubset(c); err != nil {
				errs = append(errs, fmt.Errorf("client %d: %w", i, err))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// validateStructure checks what must hold for a book to be usable at all
func (ip *InputParser) validateStructure(book *domain.ClientBook) error {
	if book == nil {
		return fmt.Errorf("client book is required")
	}
	if len(book.Clients) == 0 {
		return fmt.Errorf("no clients provided")
	}

	var errs []error
	seen := make(map[string]bool, len(book.Clients))
	for i, c := range book.Clients {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("client %d: name is required", i))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("client %d: duplicate client name %q", i, c.Name))
		}
		seen[c.Name] = true

		if money.GetCurrency(c.CurrencyCode()) == nil {
			errs = append(errs, fmt.Errorf("client %d (%s): unknown currency %q", i, c.Name, c.Currency))
		}
	}

	if book.Policy != nil {
		if err := book.Policy.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("policy validation failed: %w", err))
		}
	}

	if err := validateRules(book.Rules); err != nil {
		errs = append(errs, fmt.Errorf("rules validation failed: %w", err))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func validateRules(configs []domain.RuleConfig) error {
	if len(configs) == 0 {
		return nil
	}

	engine, err := rules.NewEngine()
	if err != nil {
		return err
	}

	var errs []error
	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		if rules.IsBuiltinID(cfg.ID) {
			errs = append(errs, fmt.Errorf("rule id %q is reserved for a built-in advisory", cfg.ID))
		}
		if cfg.ID != "" && seen[cfg.ID] {
			errs = append(errs, fmt.Errorf("duplicate rule id %q", cfg.ID))
			continue
		}
		seen[cfg.ID] = true

		if cfg.Disabled {
			continue
		}
		if err := engine.ValidateRule(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ip *InputParser) logger() calculation.Logger {
	if ip.Logger == nil {
		return calculation.NopLogger{}
	}
	return ip.Logger
}
