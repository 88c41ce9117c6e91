package transform

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRegime switches between the progressive schedule and the flat regime.
type SetRegime struct {
	Regime domain.TaxRegime
}

func (t *SetRegime) Name() string { return "set_regime" }

func (t *SetRegime) Description() string {
	return fmt.Sprintf("Use the %s tax regime", t.Regime)
}

func (t *SetRegime) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if _, err := domain.ParseTaxRegime(string(t.Regime)); err != nil {
		return NewTransformError(t.Name(), "validate", "unknown regime", err)
	}
	return nil
}

func (t *SetRegime) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	regime, err := domain.ParseTaxRegime(string(t.Regime))
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "unknown regime", err)
	}
	modified := base.Clone()
	modified.Input.Regime = regime
	return modified, nil
}

// SetCategory changes the employment category.
type SetCategory struct {
	Category domain.EmploymentCategory
}

func (t *SetCategory) Name() string { return "set_category" }

func (t *SetCategory) Description() string {
	return fmt.Sprintf("Work as %s", t.Category)
}

func (t *SetCategory) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if _, err := domain.ParseEmploymentCategory(string(t.Category)); err != nil {
		return NewTransformError(t.Name(), "validate", "unknown employment category", err)
	}
	return nil
}

func (t *SetCategory) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	category, err := domain.ParseEmploymentCategory(string(t.Category))
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "unknown employment category", err)
	}
	modified := base.Clone()
	modified.Input.Category = category
	return modified, nil
}

// SetMaritalStatus changes the marital status and with it the splitting rule.
type SetMaritalStatus struct {
	Status domain.MaritalStatus
}

func (t *SetMaritalStatus) Name() string { return "set_marital_status" }

func (t *SetMaritalStatus) Description() string {
	return fmt.Sprintf("File as %s", t.Status)
}

func (t *SetMaritalStatus) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if _, err := domain.ParseMaritalStatus(string(t.Status)); err != nil {
		return NewTransformError(t.Name(), "validate", "unknown marital status", err)
	}
	return nil
}

func (t *SetMaritalStatus) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	status, err := domain.ParseMaritalStatus(string(t.Status))
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "unknown marital status", err)
	}
	modified := base.Clone()
	modified.Input.MaritalStatus = status
	return modified, nil
}

// SetPaymentCount switches between 12 and 14 payments. A monthly salary keeps
// its annual total, so the per-payment amount is rescaled to the cent; an annual salary
// is left as is.
type SetPaymentCount struct {
	Count int
}

func (t *SetPaymentCount) Name() string { return "set_payments" }

func (t *SetPaymentCount) Description() string {
	return fmt.Sprintf("Receive the same annual gross in %d payments", t.Count)
}

func (t *SetPaymentCount) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Count != domain.TwelvePayments && t.Count != domain.FourteenPayments {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("payment count must be 12 or 14, got %d", t.Count), domain.ErrInvalidPaymentCount)
	}
	if base.Input.PaymentCount <= 0 {
		return NewTransformError(t.Name(), "validate", "base payment count must be positive", domain.ErrInvalidPaymentCount)
	}
	return nil
}

func (t *SetPaymentCount) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	in := &modified.Input
	in.SalaryMode = in.Canonical().SalaryMode
	if in.SalaryMode != domain.SalaryAnnual && in.PaymentCount != t.Count {
		annual := in.GrossSalary.Mul(decimal.NewFromInt(int64(in.PaymentCount)))
		in.GrossSalary = annual.Div(decimal.NewFromInt(int64(t.Count))).Round(2)
	}
	in.PaymentCount = t.Count
	return modified, nil
}

// SetDependents sets the dependent count.
type SetDependents struct {
	Count int
}

func (t *SetDependents) Name() string { return "set_dependents" }

func (t *SetDependents) Description() string {
	return fmt.Sprintf("Claim %d dependents", t.Count)
}

func (t *SetDependents) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Count < 0 {
		return NewTransformError(t.Name(), "validate", "dependents cannot be negative", domain.ErrInvalidDependents)
	}
	return nil
}

func (t *SetDependents) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Input.Dependents = t.Count
	return modified, nil
}

// AddDependents adds (or with a negative delta removes) dependents.
type AddDependents struct {
	Delta int
}

func (t *AddDependents) Name() string { return "add_dependents" }

func (t *AddDependents) Description() string {
	return fmt.Sprintf("Change dependents by %+d", t.Delta)
}

func (t *AddDependents) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if base.Input.Dependents+t.Delta < 0 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("cannot remove %d dependents from %d", -t.Delta, base.Input.Dependents), domain.ErrInvalidDependents)
	}
	return nil
}

func (t *AddDependents) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Input.Dependents += t.Delta
	return modified, nil
}

// SetDisability sets the disability flag.
type SetDisability struct {
	Enabled bool
}

func (t *SetDisability) Name() string { return "set_disability" }

func (t *SetDisability) Description() string {
	if t.Enabled {
		return "Claim the disability credit"
	}
	return "Do not claim the disability credit"
}

func (t *SetDisability) Validate(base *domain.Scenario) error {
	return requireBase(t.Name(), base)
}

func (t *SetDisability) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Input.HasDisability = t.Enabled
	return modified, nil
}

// ScaleSalary multiplies the gross salary by a factor (1.1 = a 10% raise).
type ScaleSalary struct {
	Factor decimal.Decimal
}

func (t *ScaleSalary) Name() string { return "scale_salary" }

func (t *ScaleSalary) Description() string {
	pct := t.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Change gross salary by %s%%", pct.StringFixed(1))
}

func (t *ScaleSalary) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Factor.IsNegative() {
		return NewTransformError(t.Name(), "validate", "factor cannot be negative", domain.ErrInvalidSalary)
	}
	return nil
}

func (t *ScaleSalary) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Input.GrossSalary = base.Input.GrossSalary.Mul(t.Factor).Round(2)
	return modified, nil
}

// SetSalary replaces the gross salary, keeping the salary mode.
type SetSalary struct {
	Amount decimal.Decimal
}

func (t *SetSalary) Name() string { return "set_salary" }

func (t *SetSalary) Description() string {
	return fmt.Sprintf("Set gross salary to %s", t.Amount.StringFixed(2))
}

func (t *SetSalary) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "salary cannot be negative", domain.ErrInvalidSalary)
	}
	return nil
}

func (t *SetSalary) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.Clone()
	modified.Input.GrossSalary = t.Amount
	return modified, nil
}

// SetSalaryMode re-expresses the same gross as a monthly or annual figure.
type SetSalaryMode struct {
	Mode domain.SalaryInputMode
}

func (t *SetSalaryMode) Name() string { return "set_salary_mode" }

func (t *SetSalaryMode) Description() string {
	return fmt.Sprintf("Express gross salary as a %s amount", t.Mode)
}

func (t *SetSalaryMode) Validate(base *domain.Scenario) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if _, err := domain.ParseSalaryInputMode(string(t.Mode)); err != nil {
		return NewTransformError(t.Name(), "validate", "unknown salary mode", err)
	}
	if base.Input.PaymentCount <= 0 {
		return NewTransformError(t.Name(), "validate", "base payment count must be positive", domain.ErrInvalidPaymentCount)
	}
	return nil
}

func (t *SetSalaryMode) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	mode, err := domain.ParseSalaryInputMode(string(t.Mode))
	if err != nil {
		return nil, NewTransformError(t.Name(), "apply", "unknown salary mode", err)
	}
	modified := base.Clone()
	in := &modified.Input
	current, _ := domain.ParseSalaryInputMode(string(in.SalaryMode))
	payments := decimal.NewFromInt(int64(in.PaymentCount))
	switch {
	case current == mode:
	case mode == domain.SalaryAnnual:
		in.GrossSalary = in.GrossSalary.Mul(payments)
	default:
		in.GrossSalary = in.GrossSalary.Div(payments).Round(2)
	}
	in.SalaryMode = mode
	return modified, nil
}
