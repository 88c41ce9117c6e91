package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the net-pay calculation. It holds no
// per-call state, so one engine may serve concurrent callers.
type CalculationEngine struct {
	Rules   domain.TaxRules
	IRSCalc *IRSCalculator
	SSCalc  *SocialSecurityCalculator
	Logger  Logger
	Debug   bool // log intermediate figures at debug level
}

// NewCalculationEngine creates an engine over the embedded rules table
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(config.DefaultRules())
}

// NewCalculationEngineWithRules creates an engine over a custom rules table
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:   rules,
		IRSCalc: NewIRSCalculator(rules),
		SSCalc:  NewSocialSecurityCalculator(rules),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// filingRule is the legal rule that produces the regime tax for one
// (regime, marital status) combination.
type filingRule int

const (
	// ruleProgressive runs the bracket schedule on the full taxable income.
	ruleProgressive filingRule = iota
	// ruleProgressiveSplit runs it on half the income and doubles the tax
	// (quociente conjugal for single-earner couples).
	ruleProgressiveSplit
	// ruleFlat applies the flat alternative rate with no credits, split or surtax.
	ruleFlat
)

type filingKey struct {
	regime domain.TaxRegime
	status domain.MaritalStatus
}

var filingRules = map[filingKey]filingRule{
	{domain.RegimeStandard, domain.Single}:              ruleProgressive,
	{domain.RegimeStandard, domain.MarriedTwoEarners}:   ruleProgressive,
	{domain.RegimeStandard, domain.MarriedSingleEarner}: ruleProgressiveSplit,
	{domain.RegimeFlat, domain.Single}:                  ruleFlat,
	{domain.RegimeFlat, domain.MarriedTwoEarners}:       ruleFlat,
	{domain.RegimeFlat, domain.MarriedSingleEarner}:     ruleFlat,
}

func resolveFilingRule(regime domain.TaxRegime, status domain.MaritalStatus) (filingRule, error) {
	rule, ok := filingRules[filingKey{regime, status}]
	if !ok {
		return 0, fmt.Errorf("%w: no filing rule for regime %q and marital status %q", domain.ErrInvalidInput, regime, status)
	}
	return rule, nil
}

// regimeTax is the income tax outcome before aggregation.
type regimeTax struct {
	beforeCredits decimal.Decimal
	credits       TaxCredits
	afterCredits  decimal.Decimal
	surtax        decimal.Decimal
	bracket       domain.AppliedBracket
	split         bool
}

func (ce *CalculationEngine) incomeTax(rule filingRule, taxable decimal.Decimal, in domain.TaxInput) regimeTax {
	var out regimeTax
	switch rule {
	case ruleFlat:
		out.beforeCredits = ce.IRSCalc.FlatTax(taxable)
		out.afterCredits = out.beforeCredits
		out.credits = TaxCredits{Dependent: decimal.Zero, Disability: decimal.Zero}
		out.surtax = decimal.Zero
		out.bracket = domain.NoBracket()
		return out

	case ruleProgressiveSplit:
		half := taxable.Div(decimal.NewFromInt(2))
		tax, bracket := ce.IRSCalc.ProgressiveTax(half)
		out.beforeCredits = tax.Mul(decimal.NewFromInt(2))
		out.bracket = bracket
		out.split = true

	default:
		out.beforeCredits, out.bracket = ce.IRSCalc.ProgressiveTax(taxable)
	}

	out.credits = ce.IRSCalc.CalculateCredits(in.Dependents, in.HasDisability)
	out.afterCredits = decimal.Max(decimal.Zero, out.beforeCredits.Sub(out.credits.Total()))
	// Surtax is on the individual (unsplit) income and is not reduced by credits.
	out.surtax = ce.IRSCalc.SolidaritySurtax(taxable)
	return out
}

// Calculate evaluates one input record. The result depends only on the
// input and the engine's rules.
func (ce *CalculationEngine) Calculate(in domain.TaxInput) (*domain.TaxResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.Canonical()
	rule, err := resolveFilingRule(in.Regime, in.MaritalStatus)
	if err != nil {
		return nil, err
	}

	payments := decimal.NewFromInt(int64(in.PaymentCount))

	var grossMonthly, grossAnnual decimal.Decimal
	switch in.SalaryMode {
	case domain.SalaryAnnual:
		grossAnnual = in.GrossSalary
		grossMonthly = in.GrossSalary.Div(payments)
	default:
		grossMonthly = in.GrossSalary
		grossAnnual = in.GrossSalary.Mul(payments)
	}

	contribution := ce.SSCalc.Calculate(in.Category, grossMonthly, grossAnnual, in.PaymentCount)
	taxable := grossAnnual.Sub(contribution.Annual)

	tax := ce.incomeTax(rule, taxable, in)
	totalTax := tax.afterCredits.Add(tax.surtax)

	netAnnual := grossAnnual.Sub(contribution.Annual).Sub(totalTax)
	taxMonthly := totalTax.Div(payments)
	netMonthly := grossMonthly.Sub(contribution.Monthly).Sub(taxMonthly)

	effectiveTax := decimal.Zero
	effectiveTotal := decimal.Zero
	if grossAnnual.IsPositive() {
		effectiveTax = totalTax.Div(grossAnnual)
		effectiveTotal = contribution.Annual.Add(totalTax).Div(grossAnnual)
	}

	if ce.Debug {
		ce.Logger.Debugf("gross monthly=%s annual=%s payments=%d", grossMonthly.StringFixed(2), grossAnnual.StringFixed(2), in.PaymentCount)
		ce.Logger.Debugf("social security monthly=%s annual=%s capped=%t", contribution.Monthly.StringFixed(2), contribution.Annual.StringFixed(2), contribution.Capped)
		ce.Logger.Debugf("taxable=%s regime=%s marital=%s bracket=%d split=%t", taxable.StringFixed(2), in.Regime, in.MaritalStatus, tax.bracket.Number(), tax.split)
		ce.Logger.Debugf("tax before credits=%s credits=%s surtax=%s total=%s", tax.beforeCredits.StringFixed(2), tax.credits.Total().StringFixed(2), tax.surtax.StringFixed(2), totalTax.StringFixed(2))
	}

	return &domain.TaxResult{
		GrossMonthly:                grossMonthly,
		GrossAnnual:                 grossAnnual,
		SocialSecurityMonthly:       contribution.Monthly,
		SocialSecurityAnnual:        contribution.Annual,
		TaxableIncome:               taxable,
		IncomeTaxBeforeCredits:      tax.beforeCredits,
		Surtax:                      tax.surtax,
		IncomeTaxAnnual:             totalTax,
		IncomeTaxMonthly:            taxMonthly,
		NetMonthly:                  netMonthly,
		NetAnnual:                   netAnnual,
		DependentCredit:             tax.credits.Dependent,
		DisabilityCredit:            tax.credits.Disability,
		TotalCredits:                tax.credits.Total(),
		EffectiveIncomeTaxRate:      effectiveTax,
		EffectiveSocialSecurityRate: ce.Rules.SocialSecurity.EmployeeRate,
		EffectiveTotalRate:          effectiveTotal,
		AppliedBracket:              tax.bracket,
		MaritalSplitApplied:         tax.split,
		SelfEmployed:                in.Category == domain.SelfEmployed,
		ContributionCapped:          contribution.Capped,
		ContributionCeiling:         contribution.Ceiling,
		PaymentCount:                in.PaymentCount,
	}, nil
}

// RunScenarios evaluates every scenario of a configuration into a report
func (ce *CalculationEngine) RunScenarios(cfg *domain.Configuration) (*domain.Report, error) {
	report := &domain.Report{
		TaxYear:     ce.Rules.Metadata.TaxYear,
		Scenarios:   make([]domain.ScenarioResult, 0, len(cfg.Scenarios)),
		Assumptions: DefaultAssumptions(ce.Rules),
	}
	for _, sc := range cfg.Scenarios {
		res, err := ce.Calculate(sc.Input)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		ce.Logger.Infof("scenario %s: net annual %s", sc.Name, res.NetAnnual.StringFixed(2))
		report.Scenarios = append(report.Scenarios, domain.ScenarioResult{
			Name:        sc.Name,
			Description: sc.Description,
			Input:       sc.Input,
			Result:      res,
		})
	}
	return report, nil
}

// DefaultAssumptions lists the modelling simplifications rendered in reports.
func DefaultAssumptions(rules domain.TaxRules) []string {
	return []string{
		fmt.Sprintf("IRS brackets and constants for tax year %d, mainland Portugal", rules.Metadata.TaxYear),
		"Taxable income is gross minus the worker's social security contribution; no other deductions",
		"Monthly IRS is annual tax divided by the number of payments, not the withholding tables",
		"Dependent and disability amounts are credits against tax; dependent age is not modelled",
		"Reported effective social security rate is the employee rate for every category",
	}
}
