package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules holds every statutory constant for one tax year. It is loaded
// once (see config.DefaultRules) and never mutated afterwards.
type TaxRules struct {
	Metadata       RulesMetadata       `yaml:"metadata" json:"metadata"`
	Brackets       []TaxBracket        `yaml:"brackets" json:"brackets"`
	SocialSecurity SocialSecurityRules `yaml:"social_security" json:"social_security"`
	FlatRegimeRate decimal.Decimal     `yaml:"flat_regime_rate" json:"flat_regime_rate"`
	Surtax         SurtaxRules         `yaml:"solidarity_surtax" json:"solidarity_surtax"`
	// MinimumSubsistence is the taxable income at or below which no
	// progressive tax is due (mínimo de existência).
	MinimumSubsistence decimal.Decimal `yaml:"minimum_subsistence" json:"minimum_subsistence"`
	// ReferenceIndex is the IAS. It only feeds the self-employed ceiling.
	ReferenceIndex decimal.Decimal `yaml:"reference_index" json:"reference_index"`
	Credits        CreditRules     `yaml:"credits" json:"credits"`
}

// RulesMetadata describes where a rules table came from.
type RulesMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	Source      string `yaml:"source" json:"source"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is one row of the progressive schedule. Tax inside the bracket
// is income × Rate − Deduction. A nil Max marks the unbounded top bracket.
type TaxBracket struct {
	Min       decimal.Decimal  `yaml:"min" json:"min"`
	Max       *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate      decimal.Decimal  `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal  `yaml:"deduction" json:"deduction"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool { return b.Max == nil }

// Covers reports whether income is at or below the bracket's upper bound.
func (b TaxBracket) Covers(income decimal.Decimal) bool {
	return b.Max == nil || income.LessThanOrEqual(*b.Max)
}

// TaxAt applies the bracket formula, floored at zero.
func (b TaxBracket) TaxAt(income decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, income.Mul(b.Rate).Sub(b.Deduction))
}

// SocialSecurityRules holds contribution rates. EmployerRate and
// SelfEmployedExtendedRate are informational; net pay never uses them.
type SocialSecurityRules struct {
	EmployeeRate             decimal.Decimal `yaml:"employee_rate" json:"employee_rate"`
	EmployerRate             decimal.Decimal `yaml:"employer_rate" json:"employer_rate"`
	SelfEmployedRate         decimal.Decimal `yaml:"self_employed_rate" json:"self_employed_rate"`
	SelfEmployedExtendedRate decimal.Decimal `yaml:"self_employed_extended_rate" json:"self_employed_extended_rate"`
	// SelfEmployedCeilingMultiplier times ReferenceIndex caps the monthly
	// self-employed contribution base.
	SelfEmployedCeilingMultiplier decimal.Decimal `yaml:"self_employed_ceiling_ias_multiplier" json:"self_employed_ceiling_ias_multiplier"`
}

// SurtaxRules describes the two-tier solidarity surtax.
type SurtaxRules struct {
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Rate1      decimal.Decimal `yaml:"rate_1" json:"rate_1"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`
	Rate2      decimal.Decimal `yaml:"rate_2" json:"rate_2"`
}

// CreditRules holds the flat tax credits. PerDependentUnder3 is published
// alongside the others but the input model carries no dependent ages, so the
// engine never reads it.
type CreditRules struct {
	PerDependent       decimal.Decimal `yaml:"per_dependent" json:"per_dependent"`
	PerDependentUnder3 decimal.Decimal `yaml:"per_dependent_under_3" json:"per_dependent_under_3"`
	Disability         decimal.Decimal `yaml:"disability" json:"disability"`
}

// SelfEmployedCeiling returns the monthly contribution base cap.
func (r *TaxRules) SelfEmployedCeiling() decimal.Decimal {
	return r.SocialSecurity.SelfEmployedCeilingMultiplier.Mul(r.ReferenceIndex)
}

// Validate checks the structural invariants of the bracket table and the
// surtax thresholds.
func (r *TaxRules) Validate() error {
	if len(r.Brackets) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidRules)
	}
	if !r.Brackets[0].Min.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0, got %s", ErrInvalidRules, r.Brackets[0].Min)
	}
	for i, b := range r.Brackets {
		last := i == len(r.Brackets)-1
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1]", ErrInvalidRules, i+1, b.Rate)
		}
		if b.Deduction.IsNegative() {
			return fmt.Errorf("%w: bracket %d has a negative deduction", ErrInvalidRules, i+1)
		}
		if last {
			if !b.Unbounded() {
				return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidRules)
			}
			continue
		}
		if b.Unbounded() {
			return fmt.Errorf("%w: only the last bracket may be unbounded (bracket %d)", ErrInvalidRules, i+1)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket %d upper bound %s not above lower bound %s", ErrInvalidRules, i+1, b.Max, b.Min)
		}
		if next := r.Brackets[i+1]; !next.Min.Equal(*b.Max) {
			return fmt.Errorf("%w: bracket %d starts at %s, expected %s", ErrInvalidRules, i+2, next.Min, b.Max)
		}
	}
	if !r.Surtax.Threshold2.GreaterThan(r.Surtax.Threshold1) {
		return fmt.Errorf("%w: surtax threshold 2 must exceed threshold 1", ErrInvalidRules)
	}
	if r.MinimumSubsistence.IsNegative() || r.ReferenceIndex.IsNegative() {
		return fmt.Errorf("%w: minimum subsistence and reference index must not be negative", ErrInvalidRules)
	}
	return nil
}
