package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SalaryInputMode says whether TaxInput.GrossSalary is a per-payment or a yearly amount.
type SalaryInputMode string

const (
	SalaryMonthly SalaryInputMode = "monthly"
	SalaryAnnual  SalaryInputMode = "annual"
)

// EmploymentCategory selects the social security regime.
type EmploymentCategory string

const (
	Employee     EmploymentCategory = "employee"
	SelfEmployed EmploymentCategory = "self_employed"
)

// TaxRegime selects between the progressive IRS schedule and the flat
// alternative regime (NHR / IFICI).
type TaxRegime string

const (
	RegimeStandard TaxRegime = "standard"
	RegimeFlat     TaxRegime = "flat"
)

// MaritalStatus drives the marital income-splitting rule.
type MaritalStatus string

const (
	Single              MaritalStatus = "single"
	MarriedSingleEarner MaritalStatus = "married_single_earner"
	MarriedTwoEarners   MaritalStatus = "married_two_earners"
)

// Payment schedules accepted by the engine.
const (
	TwelvePayments   = 12
	FourteenPayments = 14
)

// TaxInput is the full set of taxpayer facts needed for one evaluation.
type TaxInput struct {
	GrossSalary   decimal.Decimal    `yaml:"gross_salary" json:"gross_salary"`
	SalaryMode    SalaryInputMode    `yaml:"salary_mode" json:"salary_mode"`
	PaymentCount  int                `yaml:"payment_count" json:"payment_count"`
	Category      EmploymentCategory `yaml:"employment_category" json:"employment_category"`
	Regime        TaxRegime          `yaml:"tax_regime" json:"tax_regime"`
	MaritalStatus MaritalStatus      `yaml:"marital_status" json:"marital_status"`
	Dependents    int                `yaml:"dependents" json:"dependents"`
	HasDisability bool               `yaml:"has_disability" json:"has_disability"`
}

// DefaultInput returns the profile used by the reference salary table:
// monthly salary, 14 payments, employee, standard regime, single, no
// dependents and no disability.
func DefaultInput(gross decimal.Decimal) TaxInput {
	return TaxInput{
		GrossSalary:   gross,
		SalaryMode:    SalaryMonthly,
		PaymentCount:  FourteenPayments,
		Category:      Employee,
		Regime:        RegimeStandard,
		MaritalStatus: Single,
	}
}

// WithDefaults fills zero-valued enum fields and the payment count with the
// DefaultInput values. Scenario files may omit them.
func (in TaxInput) WithDefaults() TaxInput {
	def := DefaultInput(in.GrossSalary)
	if in.SalaryMode == "" {
		in.SalaryMode = def.SalaryMode
	}
	if in.PaymentCount == 0 {
		in.PaymentCount = def.PaymentCount
	}
	if in.Category == "" {
		in.Category = def.Category
	}
	if in.Regime == "" {
		in.Regime = def.Regime
	}
	if in.MaritalStatus == "" {
		in.MaritalStatus = def.MaritalStatus
	}
	return in
}

// Validate rejects inputs the engine cannot evaluate without producing
// non-finite or meaningless figures.
func (in TaxInput) Validate() error {
	const op = "validate_input"
	if in.GrossSalary.IsNegative() {
		return newInputError(op, KindInvalidSalary, "gross_salary", in.GrossSalary.String(), ErrInvalidSalary)
	}
	if in.PaymentCount != TwelvePayments && in.PaymentCount != FourteenPayments {
		return newInputError(op, KindInvalidPaymentCount, "payment_count", fmt.Sprint(in.PaymentCount), ErrInvalidPaymentCount)
	}
	if in.Dependents < 0 {
		return newInputError(op, KindInvalidDependents, "dependents", fmt.Sprint(in.Dependents), ErrInvalidDependents)
	}
	if _, err := ParseSalaryInputMode(string(in.SalaryMode)); err != nil {
		return newInputError(op, KindInvalidInput, "salary_mode", string(in.SalaryMode), err)
	}
	if _, err := ParseEmploymentCategory(string(in.Category)); err != nil {
		return newInputError(op, KindInvalidInput, "employment_category", string(in.Category), err)
	}
	if _, err := ParseTaxRegime(string(in.Regime)); err != nil {
		return newInputError(op, KindInvalidInput, "tax_regime", string(in.Regime), err)
	}
	if _, err := ParseMaritalStatus(string(in.MaritalStatus)); err != nil {
		return newInputError(op, KindInvalidInput, "marital_status", string(in.MaritalStatus), err)
	}
	return nil
}

// ParseSalaryInputMode accepts "monthly" or "annual" in any case.
func ParseSalaryInputMode(s string) (SalaryInputMode, error) {
	switch normalize(s) {
	case "monthly", "month", "m":
		return SalaryMonthly, nil
	case "annual", "yearly", "year", "a":
		return SalaryAnnual, nil
	}
	return "", fmt.Errorf("%w: unknown salary mode %q", ErrInvalidInput, s)
}

// ParseEmploymentCategory accepts "employee" or "self_employed" (also "self-employed").
func ParseEmploymentCategory(s string) (EmploymentCategory, error) {
	switch normalize(s) {
	case "employee", "dependent":
		return Employee, nil
	case "self_employed", "independent", "freelancer":
		return SelfEmployed, nil
	}
	return "", fmt.Errorf("%w: unknown employment category %q", ErrInvalidInput, s)
}

// ParseTaxRegime accepts "standard" or "flat"; "nhr" and "ifici" are aliases for flat.
func ParseTaxRegime(s string) (TaxRegime, error) {
	switch normalize(s) {
	case "standard", "progressive":
		return RegimeStandard, nil
	case "flat", "nhr", "ifici":
		return RegimeFlat, nil
	}
	return "", fmt.Errorf("%w: unknown tax regime %q", ErrInvalidInput, s)
}

// ParseMaritalStatus accepts the canonical names plus the short forms
// "married_one" and "married_two".
func ParseMaritalStatus(s string) (MaritalStatus, error) {
	switch normalize(s) {
	case "single":
		return Single, nil
	case "married_single_earner", "married_one":
		return MarriedSingleEarner, nil
	case "married_two_earners", "married_two":
		return MarriedTwoEarners, nil
	}
	return "", fmt.Errorf("%w: unknown marital status %q", ErrInvalidInput, s)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// Scenario is a named input record, as stored in scenario files.
type Scenario struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Input       TaxInput `yaml:",inline" json:"input"`
}

// Clone returns a copy of the scenario. TaxInput holds only values, so a
// shallow copy is independent of the original.
func (s *Scenario) Clone() *Scenario {
	c := *s
	return &c
}

// Configuration is the root of a scenario file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the scenario with the given name.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// Canonical returns the input with every enum field rewritten to its
// canonical value, so aliases such as "nhr" or "married-one" compare equal
// to the constants. Call it after Validate; unparseable fields are left as is.
func (in TaxInput) Canonical() TaxInput {
	if v, err := ParseSalaryInputMode(string(in.SalaryMode)); err == nil {
		in.SalaryMode = v
	}
	if v, err := ParseEmploymentCategory(string(in.Category)); err == nil {
		in.Category = v
	}
	if v, err := ParseTaxRegime(string(in.Regime)); err == nil {
		in.Regime = v
	}
	if v, err := ParseMaritalStatus(string(in.MaritalStatus)); err == nil {
		in.MaritalStatus = v
	}
	return in
}
