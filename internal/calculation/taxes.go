package calculation

import (
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. IRS brackets, rates and deductions are fixed to one tax year (the rules
//    table); nothing is indexed.
// 2. Taxable income is gross minus the worker's social security contribution.
//    No other specific deductions (category A deduction, health, education)
//    are modelled.
// 3. The minimum-subsistence rule is a hard exemption: at or below the
//    threshold the progressive tax is zero, above it the full bracket formula
//    applies. There is no phase-in.
// 4. Dependent and disability amounts are credits against the tax, not
//    deductions from income.
// 5. Monthly withholding is annual tax / payments, not the withholding tables.

// IRSCalculator handles personal income tax (IRS) calculations
type IRSCalculator struct {
	Brackets           []domain.TaxBracket
	MinimumSubsistence decimal.Decimal
	FlatRate           decimal.Decimal
	Surtax             domain.SurtaxRules
	Credits            domain.CreditRules
}

// NewIRSCalculator creates an IRS calculator from a rules table
func NewIRSCalculator(rules domain.TaxRules) *IRSCalculator {
	return &IRSCalculator{
		Brackets:           rules.Brackets,
		MinimumSubsistence: rules.MinimumSubsistence,
		FlatRate:           rules.FlatRegimeRate,
		Surtax:             rules.Surtax,
		Credits:            rules.Credits,
	}
}

// ProgressiveTax returns the tax on an annual taxable income and the bracket
// it was computed in. Income at or below the minimum subsistence threshold is
// exempt and selects no bracket.
func (c *IRSCalculator) ProgressiveTax(taxableIncome decimal.Decimal) (decimal.Decimal, domain.AppliedBracket) {
	if taxableIncome.LessThanOrEqual(c.MinimumSubsistence) || len(c.Brackets) == 0 {
		return decimal.Zero, domain.NoBracket()
	}

	index := len(c.Brackets) - 1
	for i, bracket := range c.Brackets {
		if bracket.Covers(taxableIncome) {
			index = i
			break
		}
	}

	bracket := c.Brackets[index]
	return bracket.TaxAt(taxableIncome), domain.BracketAt(index, bracket)
}

// FlatTax applies the flat alternative regime rate.
func (c *IRSCalculator) FlatTax(taxableIncome decimal.Decimal) decimal.Decimal {
	return taxableIncome.Mul(c.FlatRate)
}

// SolidaritySurtax computes the two-tier surtax on individual taxable income.
func (c *IRSCalculator) SolidaritySurtax(taxableIncome decimal.Decimal) decimal.Decimal {
	s := c.Surtax
	if taxableIncome.LessThanOrEqual(s.Threshold1) {
		return decimal.Zero
	}
	if taxableIncome.LessThanOrEqual(s.Threshold2) {
		return taxableIncome.Sub(s.Threshold1).Mul(s.Rate1)
	}
	firstTier := s.Threshold2.Sub(s.Threshold1).Mul(s.Rate1)
	return firstTier.Add(taxableIncome.Sub(s.Threshold2).Mul(s.Rate2))
}

// TaxCredits holds the credit amounts subtracted from the computed tax.
type TaxCredits struct {
	Dependent  decimal.Decimal
	Disability decimal.Decimal
}

// Total is the sum of all credits.
func (tc TaxCredits) Total() decimal.Decimal {
	return tc.Dependent.Add(tc.Disability)
}

// CalculateCredits returns the flat per-dependent and disability credits.
func (c *IRSCalculator) CalculateCredits(dependents int, hasDisability bool) TaxCredits {
	credits := TaxCredits{
		Dependent:  c.Credits.PerDependent.Mul(decimal.NewFromInt(int64(dependents))),
		Disability: decimal.Zero,
	}
	if hasDisability {
		credits.Disability = c.Credits.Disability
	}
	return credits
}
