package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/transform"
	"github.com/samber/lo"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; empty means the first one
	Templates        []string // Template names, each producing one alternative
	TransformSpecs   []string // "name:k=v" specs combined into one custom alternative
}

func (ce *CompareEngine) evaluate(sc *domain.Scenario) (ComparisonResult, error) {
	res, err := ce.CalcEngine.Calculate(sc.Input)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(sc, res), nil
}

func findBase(config *domain.Configuration, name string) (*domain.Scenario, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}
	if name == "" {
		return &config.Scenarios[0], nil
	}
	sc, ok := config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", name)
	}
	return sc, nil
}

// Compare evaluates the base scenario against template- and transform-derived alternatives
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseScenario, err := findBase(config, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}

	baseResult, err := ce.evaluate(baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}
	addAlternative := func(modified *domain.Scenario) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		altResult, err := ce.evaluate(modified)
		if err != nil {
			return fmt.Errorf("failed to calculate scenario %s: %w", modified.Name, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
		return nil
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		modified, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = baseScenario.Name + "_" + template.Name
		if err := addAlternative(modified); err != nil {
			return nil, err
		}
	}

	if len(options.TransformSpecs) > 0 {
		transforms := make([]transform.ScenarioTransform, 0, len(options.TransformSpecs))
		for _, spec := range options.TransformSpecs {
			tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
			}
			transforms = append(transforms, tr)
		}
		descriptions := strings.Join(lo.Map(transforms, func(tr transform.ScenarioTransform, _ int) string {
			return tr.Description()
		}), "; ")
		modified, err := transform.ApplyTransforms(baseScenario, transforms)
		if err != nil {
			return nil, err
		}
		modified.Name = baseScenario.Name + "_custom"
		modified.Description = descriptions
		if err := addAlternative(modified); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		TaxYear:            ce.CalcEngine.Rules.Metadata.TaxYear,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareScenarios compares explicit scenarios of the configuration (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	baseScenario, err := findBase(config, baseScenarioName)
	if err != nil {
		return nil, err
	}
	baseResult, err := ce.evaluate(baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	if len(alternativeScenarioNames) == 0 {
		for _, sc := range config.Scenarios {
			if sc.Name != baseScenario.Name {
				alternativeScenarioNames = append(alternativeScenarioNames, sc.Name)
			}
		}
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sc, ok := config.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}
		altResult, err := ce.evaluate(sc)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		TaxYear:            ce.CalcEngine.Rules.Metadata.TaxYear,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
