package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestTaxBracket(t *testing.T) {
	b := TaxBracket{Min: dec("12587"), Max: ptr(dec("17838")), Rate: dec("0.212"), Deduction: dec("959.26")}

	assert.False(t, b.Unbounded())
	assert.True(t, b.Covers(dec("17838")), "upper bound is inclusive")
	assert.False(t, b.Covers(dec("17838.01")))
	assert.True(t, b.TaxAt(dec("15000")).Equal(dec("2220.74")))
	assert.True(t, b.TaxAt(dec("1000")).IsZero(), "never negative")

	top := TaxBracket{Min: dec("86634"), Rate: dec("0.48"), Deduction: dec("11387.17")}
	assert.True(t, top.Unbounded())
	assert.True(t, top.Covers(dec("1000000000")))
}

func validRules() TaxRules {
	return TaxRules{
		Brackets: []TaxBracket{
			{Min: dec("0"), Max: ptr(dec("10000")), Rate: dec("0.1"), Deduction: dec("0")},
			{Min: dec("10000"), Rate: dec("0.2"), Deduction: dec("1000")},
		},
		SocialSecurity: SocialSecurityRules{
			EmployeeRate:                  dec("0.11"),
			SelfEmployedRate:              dec("0.214"),
			SelfEmployedCeilingMultiplier: dec("12"),
		},
		FlatRegimeRate: dec("0.2"),
		Surtax:         SurtaxRules{Threshold1: dec("80000"), Rate1: dec("0.025"), Threshold2: dec("250000"), Rate2: dec("0.05")},
		ReferenceIndex: dec("537.13"),
	}
}

func TestTaxRules_SelfEmployedCeiling(t *testing.T) {
	r := validRules()
	assert.True(t, r.SelfEmployedCeiling().Equal(dec("6445.56")))
}

func TestTaxRules_Validate(t *testing.T) {
	r := validRules()
	assert.NoError(t, r.Validate())

	tests := []struct {
		name   string
		modify func(*TaxRules)
	}{
		{"no brackets", func(r *TaxRules) { r.Brackets = nil }},
		{"first bracket not at zero", func(r *TaxRules) { r.Brackets[0].Min = dec("1") }},
		{"gap between brackets", func(r *TaxRules) { r.Brackets[1].Min = dec("10001") }},
		{"unbounded middle bracket", func(r *TaxRules) { r.Brackets[0].Max = nil }},
		{"rate above one", func(r *TaxRules) { r.Brackets[1].Rate = dec("1.5") }},
		{"negative deduction", func(r *TaxRules) { r.Brackets[1].Deduction = dec("-1") }},
		{"surtax thresholds reversed", func(r *TaxRules) { r.Surtax.Threshold2 = dec("1000") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRules()
			tt.modify(&r)
			err := r.Validate()
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}
