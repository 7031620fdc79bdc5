package config

import (
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/rules"
)

// NewEngine builds a metrics engine for a book: the book's scoring policy plus its
// custom rules, if any
func NewEngine(book *domain.ClientBook, logger calculation.Logger) (*calculation.MetricsEngine, error) {
	if book == nil {
		return nil, fmt.Errorf("client book is required")
	}

	engine := calculation.NewMetricsEngineWithPolicy(book.EffectivePolicy())
	engine.SetLogger(logger)

	if len(book.Rules) == 0 {
		return engine, nil
	}

	rulesEngine, err := rules.NewEngine()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		rulesEngine.SetLogger(logger)
	}
	if err := rulesEngine.LoadRules(book.Rules); err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	engine.SetAdvisor(rulesEngine)
	return engine, nil
}
