package integration

import (
	"testing"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/output"
	"github.com/rgehrsitz/ptpay/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFile = "../testdata/scenarios.yaml"

func loadReport(t *testing.T) (*domain.Configuration, *domain.Report) {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(scenarioFile)
	require.NoError(t, err)

	report, err := calculation.NewCalculationEngine().RunScenarios(cfg)
	require.NoError(t, err)
	return cfg, report
}

func result(t *testing.T, report *domain.Report, name string) *domain.TaxResult {
	t.Helper()
	for _, sc := range report.Scenarios {
		if sc.Name == name {
			return sc.Result
		}
	}
	t.Fatalf("scenario %s not in report", name)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEndToEndCalculation(t *testing.T) {
	cfg, report := loadReport(t)
	require.Len(t, report.Scenarios, len(cfg.Scenarios))
	assert.Equal(t, 2026, report.TaxYear)
	assert.NotEmpty(t, report.Assumptions)

	tests := []struct {
		name      string
		netAnnual string
		taxAnnual string
		ssAnnual  string
		bracket   int
	}{
		{"employee_2500", "24488.59", "6661.41", "3850", 6},
		{"flat_100k", "71200", "17800", "11000", 0},
		{"freelancer_7000", "52035.24264096", "26653.85959904", "19310.89776", 8},
		{"family_3000", "31644.32", "5735.68", "4620", 6},
		{"couple_200k", "112884.34", "65115.66", "22000", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := result(t, report, tt.name)
			assert.True(t, r.NetAnnual.Equal(dec(tt.netAnnual)), "net annual %s", r.NetAnnual)
			assert.True(t, r.IncomeTaxAnnual.Equal(dec(tt.taxAnnual)), "tax annual %s", r.IncomeTaxAnnual)
			assert.True(t, r.SocialSecurityAnnual.Equal(dec(tt.ssAnnual)), "ss annual %s", r.SocialSecurityAnnual)
			assert.Equal(t, tt.bracket, r.AppliedBracket.Number())

			// net = gross - social security - income tax, to the cent
			sum := r.NetAnnual.Add(r.SocialSecurityAnnual).Add(r.IncomeTaxAnnual)
			assert.True(t, sum.Sub(r.GrossAnnual).Abs().LessThan(dec("0.01")))
		})
	}
}

func TestReferenceBehaviours(t *testing.T) {
	_, report := loadReport(t)

	t.Run("freelancer_capped", func(t *testing.T) {
		r := result(t, report, "freelancer_7000")
		assert.True(t, r.ContributionCapped)
		assert.True(t, r.SocialSecurityMonthly.Round(2).Equal(dec("1379.35")))
		assert.True(t, r.EffectiveSocialSecurityRate.Equal(dec("0.11")), "reported rate is the employee rate")
	})

	t.Run("family_credits", func(t *testing.T) {
		r := result(t, report, "family_3000")
		assert.True(t, r.DependentCredit.Equal(dec("1200")))
		assert.True(t, r.DisabilityCredit.Equal(dec("1900")))
		assert.True(t, r.TotalCredits.Equal(dec("3100")))
	})

	t.Run("couple_split_and_surtax", func(t *testing.T) {
		r := result(t, report, "couple_200k")
		assert.True(t, r.MaritalSplitApplied)
		assert.True(t, r.Surtax.Equal(dec("2450")))
	})

	t.Run("flat_has_no_bracket", func(t *testing.T) {
		r := result(t, report, "flat_100k")
		assert.False(t, r.AppliedBracket.Present())
		assert.False(t, r.HasSurtax())
		assert.False(t, r.MaritalSplitApplied)
	})
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	cfg, err := parser.LoadFromFile(scenarioFile)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	_, err = parser.LoadFromFile("../testdata/invalid_scenarios.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentCount)

	aliases, err := parser.LoadFromFile("../testdata/aliases.yaml")
	require.NoError(t, err)
	report, err := calculation.NewCalculationEngine().RunScenarios(aliases)
	require.NoError(t, err)
	assert.True(t, report.Scenarios[0].Result.NetAnnual.Equal(dec("71200")))
}

func TestRulesOverrideRoundTrip(t *testing.T) {
	rules, err := config.ParseRules(config.EmbeddedRulesYAML())
	require.NoError(t, err)

	cfg, err := config.NewInputParser().LoadFromFile(scenarioFile)
	require.NoError(t, err)

	fromParsed, err := calculation.NewCalculationEngineWithRules(rules).RunScenarios(cfg)
	require.NoError(t, err)
	fromDefault, err := calculation.NewCalculationEngine().RunScenarios(cfg)
	require.NoError(t, err)

	for i := range fromDefault.Scenarios {
		assert.True(t, fromParsed.Scenarios[i].Result.NetAnnual.Equal(fromDefault.Scenarios[i].Result.NetAnnual))
	}
}

func TestAliasScenarioThroughTransformsAndLabels(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/aliases.yaml")
	require.NoError(t, err)
	base := cfg.Scenarios[0]
	assert.Equal(t, domain.SalaryAnnual, base.Input.SalaryMode)
	assert.Equal(t, domain.RegimeFlat, base.Input.Regime)
	assert.Equal(t, domain.MarriedSingleEarner, base.Input.MaritalStatus)

	tr, err := transform.NewTransformRegistry().ParseTransformSpec("set_payments:count=14")
	require.NoError(t, err)
	moved, err := transform.ApplyTransforms(&base, []transform.ScenarioTransform{tr})
	require.NoError(t, err)
	assert.Equal(t, 14, moved.Input.PaymentCount)
	assert.True(t, moved.Input.GrossSalary.Equal(dec("100000")), "got %s", moved.Input.GrossSalary)

	engine := calculation.NewCalculationEngine()
	res, err := engine.Calculate(moved.Input)
	require.NoError(t, err)
	assert.True(t, res.GrossAnnual.Equal(dec("100000")), "got %s", res.GrossAnnual)
	assert.True(t, res.NetAnnual.Equal(dec("71200")))
	assert.Equal(t, "n/a (flat regime)", output.BracketSummary(moved.Input, res))
}
