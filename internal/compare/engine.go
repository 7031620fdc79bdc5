package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/transform"
)

// CompareEngine orchestrates client and what-if comparison
type CompareEngine struct {
	Engine            *calculation.MetricsEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.MetricsEngine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareWhatIf evaluates the base client and one variant per template
func (ce *CompareEngine) CompareWhatIf(
	ctx context.Context,
	book *domain.ClientBook,
	baseName string,
	templates []string,
) (*ComparisonSet, error) {

	baseRecord, baseResult, err := ce.evaluateBase(ctx, book, baseName)
	if err != nil {
		return nil, err
	}

	alternatives := []ComparisonResult{}
	for _, templateName := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseRecord, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseRecord.Name + "_" + template.Name

		report, err := ce.Engine.Evaluate(ctx, modified)
		if err != nil {
			report = &domain.ClientReport{Client: modified, Err: err}
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(modified.Name, KindWhatIf, report)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	return ce.newSet(baseName, baseResult, alternatives), nil
}

// CompareClients compares the base client with other clients of the same book. With
// no names given every other client is used, in book order.
func (ce *CompareEngine) CompareClients(
	ctx context.Context,
	book *domain.ClientBook,
	baseName string,
	others []string,
) (*ComparisonSet, error) {

	_, baseResult, err := ce.evaluateBase(ctx, book, baseName)
	if err != nil {
		return nil, err
	}

	if len(others) == 0 {
		for _, name := range book.Names() {
			if name != baseName {
				others = append(others, name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, name := range others {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, ok := book.Find(name)
		if !ok {
			return nil, fmt.Errorf("client %s not found", name)
		}

		report, err := ce.Engine.Evaluate(ctx, record)
		if err != nil {
			report = &domain.ClientReport{Client: record, Err: err}
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(name, KindClient, report)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	return ce.newSet(baseName, baseResult, alternatives), nil
}

func (ce *CompareEngine) evaluateBase(ctx context.Context, book *domain.ClientBook, baseName string) (domain.ClientRecord, ComparisonResult, error) {
	if book == nil {
		return domain.ClientRecord{}, ComparisonResult{}, fmt.Errorf("client book is required")
	}

	record, ok := book.Find(baseName)
	if !ok {
		return domain.ClientRecord{}, ComparisonResult{}, fmt.Errorf("base client %s not found", baseName)
	}

	report, err := ce.Engine.Evaluate(ctx, record)
	if err != nil {
		return domain.ClientRecord{}, ComparisonResult{}, fmt.Errorf("failed to evaluate base client: %w", err)
	}

	return record, ce.MetricsCalculator.CalculateMetrics(baseName, KindBase, report), nil
}

func (ce *CompareEngine) newSet(baseName string, base ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseName:           baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
