package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrossUp_MonthlyTarget(t *testing.T) {
	engine := NewCalculationEngine()

	res, err := engine.GrossUp(context.Background(), GrossUpRequest{
		Profile:   domain.DefaultInput(decimal.Zero),
		TargetNet: d("1749.185"),
	})
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Greater(t, res.Iterations, 0)
	assert.True(t, res.GrossSalary.Sub(d("2500")).Abs().LessThan(d("0.01")), "got %s", res.GrossSalary)
	assert.True(t, res.Result.NetMonthly.GreaterThanOrEqual(d("1749.185")))
}

func TestGrossUp_AnnualFlatTarget(t *testing.T) {
	engine := NewCalculationEngine()

	profile := domain.DefaultInput(decimal.Zero)
	profile.SalaryMode = domain.SalaryAnnual
	profile.Regime = domain.RegimeFlat

	res, err := engine.GrossUp(context.Background(), GrossUpRequest{
		Profile:   profile,
		TargetNet: d("71200"),
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, res.GrossSalary.Sub(d("100000")).Abs().LessThan(d("0.01")), "got %s", res.GrossSalary)
}

func TestGrossUp_AliasedProfile(t *testing.T) {
	engine := NewCalculationEngine()

	profile := domain.DefaultInput(decimal.Zero)
	profile.SalaryMode = "Annual"
	profile.Regime = "nhr"

	res, err := engine.GrossUp(context.Background(), GrossUpRequest{
		Profile:   profile,
		TargetNet: d("71200"),
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, res.GrossSalary.Sub(d("100000")).Abs().LessThan(d("0.01")), "got %s", res.GrossSalary)
	assert.True(t, res.Result.NetAnnual.Sub(d("71200")).Abs().LessThanOrEqual(d("0.01")))
}

func TestGrossUp_AcrossExemptionCliff(t *testing.T) {
	engine := NewCalculationEngine()

	profile := domain.DefaultInput(decimal.Zero)
	profile.SalaryMode = domain.SalaryAnnual

	res, err := engine.GrossUp(context.Background(), GrossUpRequest{
		Profile:   profile,
		TargetNet: d("12000"),
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, res.Result.NetAnnual.Sub(d("12000")).Abs().LessThanOrEqual(d("0.01")))
}

func TestGrossUp_Edges(t *testing.T) {
	engine := NewCalculationEngine()
	profile := domain.DefaultInput(decimal.Zero)

	t.Run("zero target", func(t *testing.T) {
		res, err := engine.GrossUp(context.Background(), GrossUpRequest{Profile: profile})
		require.NoError(t, err)
		assert.True(t, res.GrossSalary.IsZero())
		assert.True(t, res.Converged)
	})

	t.Run("negative target", func(t *testing.T) {
		_, err := engine.GrossUp(context.Background(), GrossUpRequest{Profile: profile, TargetNet: d("-1")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("negative tolerance", func(t *testing.T) {
		_, err := engine.GrossUp(context.Background(), GrossUpRequest{Profile: profile, TargetNet: d("1000"), Tolerance: d("-0.01")})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorContains(t, err, "tolerance")
	})

	t.Run("invalid profile", func(t *testing.T) {
		bad := profile
		bad.PaymentCount = 13
		_, err := engine.GrossUp(context.Background(), GrossUpRequest{Profile: bad, TargetNet: d("1000")})
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentCount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := engine.GrossUp(ctx, GrossUpRequest{Profile: profile, TargetNet: d("1000")})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGrossUp_IterationLimit(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	res, err := engine.GrossUp(context.Background(), GrossUpRequest{
		Profile:       domain.DefaultInput(decimal.Zero),
		TargetNet:     d("1749.185"),
		MaxIterations: 3,
	})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.True(t, res.Result.NetMonthly.GreaterThanOrEqual(d("1749.185")))
	assert.Contains(t, logger.messages, "WARN: gross-up stopped %s away from target %s")
}

func TestGrossUp_Unreachable(t *testing.T) {
	rules := config.DefaultRules()
	rules.FlatRegimeRate = decimal.NewFromInt(1)
	engine := NewCalculationEngineWithRules(rules)

	profile := domain.DefaultInput(decimal.Zero)
	profile.Regime = domain.RegimeFlat

	_, err := engine.GrossUp(context.Background(), GrossUpRequest{Profile: profile, TargetNet: d("1000")})
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}
