package calculation

import (
	"testing"

	"github.com/rgehrsitz/ptpay/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestIRSCalculator() *IRSCalculator {
	return NewIRSCalculator(config.DefaultRules())
}

// TestProgressiveTax tests the bracket resolver against the 2026 schedule
func TestProgressiveTax(t *testing.T) {
	calc := newTestIRSCalculator()

	tests := []struct {
		name        string
		taxable     decimal.Decimal
		expectedTax decimal.Decimal
		bracket     int // 0 means no bracket
	}{
		{"zero income", decimal.Zero, decimal.Zero, 0},
		{"inside first bracket but exempt", d("8000"), decimal.Zero, 0},
		{"exactly at minimum subsistence", d("12880"), decimal.Zero, 0},
		{"one cent above minimum subsistence", d("12880.01"), d("1771.30212"), 3}, // 12880.01*0.212-959.26
		{"bracket 4", d("20000"), d("3343.55"), 4},                                // 4820-1476.45
		{"upper bound belongs to lower bracket", d("29397"), d("6049.697"), 5},
		{"2500 x 14 employee taxable income", d("31150"), d("6661.41"), 6},
		{"bracket 8", d("53400"), d("15374.92"), 8},
		{"top bracket", d("100000"), d("36612.83"), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, applied := calc.ProgressiveTax(tt.taxable)
			assert.True(t, tt.expectedTax.Equal(tax), "expected %s, got %s", tt.expectedTax, tax)
			assert.Equal(t, tt.bracket, applied.Number())
			assert.Equal(t, tt.bracket != 0, applied.Present())
		})
	}
}

// TestProgressiveTax_ExemptBelowThreshold checks the hard exemption cliff
func TestProgressiveTax_ExemptBelowThreshold(t *testing.T) {
	calc := newTestIRSCalculator()

	for income := int64(0); income <= 12880; income += 161 {
		tax, applied := calc.ProgressiveTax(decimal.NewFromInt(income))
		assert.True(t, tax.IsZero(), "income %d should be exempt", income)
		_, ok := applied.Get()
		assert.False(t, ok)
	}

	// No smoothing: the first taxed cent pays the full bracket formula.
	tax, _ := calc.ProgressiveTax(d("12880.01"))
	assert.True(t, tax.GreaterThan(d("1700")))
}

// TestProgressiveTax_ContinuityAtBoundaries checks that the deduction
// constants make the schedule continuous. The published deductions are
// rounded, so adjoining brackets agree to within a few tens of cents.
func TestProgressiveTax_ContinuityAtBoundaries(t *testing.T) {
	brackets := config.DefaultRules().Brackets
	tolerance := d("0.5")

	for i := 0; i < len(brackets)-1; i++ {
		boundary := *brackets[i].Max
		lower := brackets[i].TaxAt(boundary)
		upper := brackets[i+1].TaxAt(boundary)
		diff := lower.Sub(upper).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"discontinuity of %s at %s between brackets %d and %d", diff, boundary, i+1, i+2)
	}
}

func TestProgressiveTax_FallsBackToLastBracket(t *testing.T) {
	rules := config.DefaultRules()

	calc := NewIRSCalculator(rules)
	// Drop the unbounded bracket so no bracket covers the income.
	calc.Brackets = rules.Brackets[:len(rules.Brackets)-1]
	tax, applied := calc.ProgressiveTax(d("100000"))
	assert.Equal(t, len(calc.Brackets), applied.Number())
	assert.True(t, tax.Equal(d("36158.52")), "got %s", tax) // 100000*0.446-8441.48
}

func TestFlatTax(t *testing.T) {
	calc := newTestIRSCalculator()
	assert.True(t, calc.FlatTax(d("89000")).Equal(d("17800")))
	assert.True(t, calc.FlatTax(decimal.Zero).IsZero())
	assert.True(t, calc.FlatTax(d("12345.67")).Equal(d("2469.134")))
}

func TestSolidaritySurtax(t *testing.T) {
	calc := newTestIRSCalculator()

	tests := []struct {
		taxable  string
		expected string
	}{
		{"0", "0"},
		{"80000", "0"},
		{"80000.01", "0.00025"},
		{"100000", "500"},
		{"250000", "4250"},
		{"300000", "6750"}, // 170000*0.025 + 50000*0.05
	}

	for _, tt := range tests {
		t.Run(tt.taxable, func(t *testing.T) {
			got := calc.SolidaritySurtax(d(tt.taxable))
			assert.True(t, d(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestSolidaritySurtax_Monotonic(t *testing.T) {
	calc := newTestIRSCalculator()

	prev := decimal.Zero
	for income := int64(0); income <= 400000; income += 2500 {
		got := calc.SolidaritySurtax(decimal.NewFromInt(income))
		require.True(t, got.GreaterThanOrEqual(prev), "surtax decreased at %d", income)
		prev = got
	}
}

func TestCalculateCredits(t *testing.T) {
	calc := newTestIRSCalculator()

	none := calc.CalculateCredits(0, false)
	assert.True(t, none.Total().IsZero())

	credits := calc.CalculateCredits(2, true)
	assert.True(t, credits.Dependent.Equal(d("1200")))
	assert.True(t, credits.Disability.Equal(d("1900")))
	assert.True(t, credits.Total().Equal(d("3100")))
}
