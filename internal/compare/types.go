package compare

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its headline metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description,omitempty"`
	Input        domain.TaxInput   `json:"input"`
	Result       *domain.TaxResult `json:"result"`

	// Key Metrics
	NetAnnual            decimal.Decimal `json:"netAnnual"`
	NetMonthly           decimal.Decimal `json:"netMonthly"`
	IncomeTaxAnnual      decimal.Decimal `json:"incomeTaxAnnual"`
	SocialSecurityAnnual decimal.Decimal `json:"socialSecurityAnnual"`
	EffectiveTotalRate   decimal.Decimal `json:"effectiveTotalRate"`

	// Comparison to Base
	NetDiffFromBase            decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase             decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase            decimal.Decimal `json:"taxDiffFromBase"`
	SocialSecurityDiffFromBase decimal.Decimal `json:"socialSecurityDiffFromBase"`
}

// ComparisonSet represents a base scenario and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
	TaxYear            int                `json:"taxYear"`
}

// ToReport converts a ComparisonSet to a domain.Report so the output
// formatters (html, pdf, ...) can render it.
func (cs *ComparisonSet) ToReport(assumptions []string) *domain.Report {
	report := &domain.Report{
		TaxYear:     cs.TaxYear,
		Scenarios:   make([]domain.ScenarioResult, 0, len(cs.AlternativeResults)+1),
		Assumptions: assumptions,
	}
	add := func(r *ComparisonResult) {
		report.Scenarios = append(report.Scenarios, domain.ScenarioResult{
			Name:        r.ScenarioName,
			Description: r.Description,
			Input:       r.Input,
			Result:      r.Result,
		})
	}
	if cs.BaseResult != nil {
		add(cs.BaseResult)
	}
	for i := range cs.AlternativeResults {
		add(&cs.AlternativeResults[i])
	}
	return report
}

// MetricsCalculator extracts key metrics from evaluated scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics of one evaluated scenario
func (mc *MetricsCalculator) CalculateMetrics(sc *domain.Scenario, res *domain.TaxResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:         sc.Name,
		Description:          sc.Description,
		Input:                sc.Input,
		Result:               res,
		NetAnnual:            res.NetAnnual,
		NetMonthly:           res.NetMonthly,
		IncomeTaxAnnual:      res.IncomeTaxAnnual,
		SocialSecurityAnnual: res.SocialSecurityAnnual,
		EffectiveTotalRate:   res.EffectiveTotalRate,
	}
}

// CalculateComparison fills in the deltas of a scenario against the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetDiffFromBase = scenario.NetAnnual.Sub(base.NetAnnual)
	if !base.NetAnnual.IsZero() {
		scenario.NetPctFromBase = scenario.NetDiffFromBase.
			Div(base.NetAnnual).
			Mul(decimal.NewFromInt(100))
	}
	scenario.TaxDiffFromBase = scenario.IncomeTaxAnnual.Sub(base.IncomeTaxAnnual)
	scenario.SocialSecurityDiffFromBase = scenario.SocialSecurityAnnual.Sub(base.SocialSecurityAnnual)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult
	all := append([]ComparisonResult{*base}, compSet.AlternativeResults...)

	bestNet := lo.MaxBy(all, func(a, b ComparisonResult) bool {
		return a.NetAnnual.GreaterThan(b.NetAnnual)
	})
	if bestNet.ScenarioName != base.ScenarioName {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Net Pay: %s leaves %s more per year than %s",
			bestNet.ScenarioName, format.FormatCurrency(bestNet.NetAnnual.Sub(base.NetAnnual)), base.ScenarioName))
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Net Pay: no alternative beats %s", base.ScenarioName))
	}

	lowestTax := lo.MinBy(all, func(a, b ComparisonResult) bool {
		return a.IncomeTaxAnnual.LessThan(b.IncomeTaxAnnual)
	})
	if lowestTax.ScenarioName != base.ScenarioName {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest IRS: %s saves %s in income tax",
			lowestTax.ScenarioName, format.FormatCurrency(base.IncomeTaxAnnual.Sub(lowestTax.IncomeTaxAnnual))))
	}

	baseCapped := base.Result != nil && base.Result.ContributionCapped
	capped := lo.Filter(compSet.AlternativeResults, func(alt ComparisonResult, _ int) bool {
		return !baseCapped && alt.Result != nil && alt.Result.ContributionCapped
	})
	for _, alt := range capped {
		recommendations = append(recommendations, fmt.Sprintf(
			"Note: %s hits the self-employed contribution ceiling (%s per month)",
			alt.ScenarioName, format.FormatCurrency(alt.Result.ContributionCeiling)))
	}

	return recommendations
}
