package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AppliedBracket is an optional bracket selection. It is absent when the
// income falls under the minimum-subsistence exemption or the flat regime
// applies.
type AppliedBracket struct {
	index   int
	bracket TaxBracket
	present bool
}

// NoBracket returns the absent selection.
func NoBracket() AppliedBracket { return AppliedBracket{} }

// BracketAt returns a selection of the bracket at the given zero-based index.
func BracketAt(index int, b TaxBracket) AppliedBracket {
	return AppliedBracket{index: index, bracket: b, present: true}
}

// Get returns the bracket and whether one was selected.
func (a AppliedBracket) Get() (TaxBracket, bool) { return a.bracket, a.present }

// Present reports whether a bracket was selected.
func (a AppliedBracket) Present() bool { return a.present }

// Number is the 1-based position of the bracket in the schedule, or 0 when absent.
func (a AppliedBracket) Number() int {
	if !a.present {
		return 0
	}
	return a.index + 1
}

type appliedBracketView struct {
	Number    int              `json:"number" yaml:"number"`
	Min       decimal.Decimal  `json:"min" yaml:"min"`
	Max       *decimal.Decimal `json:"max,omitempty" yaml:"max,omitempty"`
	Rate      decimal.Decimal  `json:"rate" yaml:"rate"`
	Deduction decimal.Decimal  `json:"deduction" yaml:"deduction"`
}

func (a AppliedBracket) view() *appliedBracketView {
	if !a.present {
		return nil
	}
	return &appliedBracketView{
		Number:    a.Number(),
		Min:       a.bracket.Min,
		Max:       a.bracket.Max,
		Rate:      a.bracket.Rate,
		Deduction: a.bracket.Deduction,
	}
}

// MarshalJSON renders null when absent.
func (a AppliedBracket) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.view())
}

// MarshalYAML renders null when absent.
func (a AppliedBracket) MarshalYAML() (interface{}, error) {
	return a.view(), nil
}

// TaxResult is the full breakdown of one evaluation. Monetary fields are in
// euros; rates are fractions (0.11 = 11%).
type TaxResult struct {
	GrossMonthly decimal.Decimal `json:"gross_monthly" yaml:"gross_monthly"`
	GrossAnnual  decimal.Decimal `json:"gross_annual" yaml:"gross_annual"`

	SocialSecurityMonthly decimal.Decimal `json:"social_security_monthly" yaml:"social_security_monthly"`
	SocialSecurityAnnual  decimal.Decimal `json:"social_security_annual" yaml:"social_security_annual"`

	TaxableIncome decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`

	// IncomeTaxBeforeCredits is the regime tax before credits are applied
	// (progressive or flat), excluding surtax.
	IncomeTaxBeforeCredits decimal.Decimal `json:"income_tax_before_credits" yaml:"income_tax_before_credits"`
	// Surtax is the solidarity surtax; always zero under the flat regime.
	Surtax decimal.Decimal `json:"surtax" yaml:"surtax"`
	// IncomeTaxAnnual is the regime tax after credits plus the surtax.
	IncomeTaxAnnual decimal.Decimal `json:"income_tax_annual" yaml:"income_tax_annual"`
	// IncomeTaxMonthly is IncomeTaxAnnual spread evenly over the payments.
	// It is an estimate, not a withholding table lookup.
	IncomeTaxMonthly decimal.Decimal `json:"income_tax_monthly" yaml:"income_tax_monthly"`

	NetMonthly decimal.Decimal `json:"net_monthly" yaml:"net_monthly"`
	NetAnnual  decimal.Decimal `json:"net_annual" yaml:"net_annual"`

	DependentCredit  decimal.Decimal `json:"dependent_credit" yaml:"dependent_credit"`
	DisabilityCredit decimal.Decimal `json:"disability_credit" yaml:"disability_credit"`
	TotalCredits     decimal.Decimal `json:"total_credits" yaml:"total_credits"`

	EffectiveIncomeTaxRate decimal.Decimal `json:"effective_income_tax_rate" yaml:"effective_income_tax_rate"`
	// EffectiveSocialSecurityRate is always the employee rate constant,
	// whatever the category or ceiling. Use SocialSecurityAnnual/GrossAnnual
	// for the actual share.
	EffectiveSocialSecurityRate decimal.Decimal `json:"effective_social_security_rate" yaml:"effective_social_security_rate"`
	EffectiveTotalRate          decimal.Decimal `json:"effective_total_rate" yaml:"effective_total_rate"`

	AppliedBracket      AppliedBracket `json:"applied_bracket" yaml:"applied_bracket"`
	MaritalSplitApplied bool           `json:"marital_split_applied" yaml:"marital_split_applied"`

	SelfEmployed        bool            `json:"self_employed" yaml:"self_employed"`
	ContributionCapped  bool            `json:"contribution_capped" yaml:"contribution_capped"`
	ContributionCeiling decimal.Decimal `json:"contribution_ceiling" yaml:"contribution_ceiling"`

	PaymentCount int `json:"payment_count" yaml:"payment_count"`
}

// HasCredits reports whether any credit reduced the tax.
func (r *TaxResult) HasCredits() bool { return r.TotalCredits.IsPositive() }

// HasSurtax reports whether the solidarity surtax is due.
func (r *TaxResult) HasSurtax() bool { return r.Surtax.IsPositive() }

// TotalDeductionsAnnual is social security plus income tax.
func (r *TaxResult) TotalDeductionsAnnual() decimal.Decimal {
	return r.SocialSecurityAnnual.Add(r.IncomeTaxAnnual)
}

// ScenarioResult pairs a named input with its evaluation.
type ScenarioResult struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Input       TaxInput   `json:"input" yaml:"input"`
	Result      *TaxResult `json:"result" yaml:"result"`
}

// Report is what the output formatters render.
type Report struct {
	TaxYear     int              `json:"tax_year" yaml:"tax_year"`
	Scenarios   []ScenarioResult `json:"scenarios" yaml:"scenarios"`
	Assumptions []string         `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}
