package output

import (
	"fmt"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
)

var regimeLabels = map[domain.TaxRegime]string{
	domain.RegimeStandard: "standard (progressive)",
	domain.RegimeFlat:     "flat alternative (NHR/IFICI)",
}

var maritalLabels = map[domain.MaritalStatus]string{
	domain.Single:              "single",
	domain.MarriedSingleEarner: "married, single earner",
	domain.MarriedTwoEarners:   "married, two earners",
}

var categoryLabels = map[domain.EmploymentCategory]string{
	domain.Employee:     "employee",
	domain.SelfEmployed: "self-employed",
}

func labelOr[K comparable](m map[K]string, k K) string {
	if v, ok := m[k]; ok {
		return v
	}
	return fmt.Sprint(k)
}

// ProfileSummary is a one-line description of an input record.
func ProfileSummary(in domain.TaxInput) string {
	in = in.Canonical()
	return fmt.Sprintf("%s %s, %s", in.SalaryMode, format.FormatCurrency(in.GrossSalary), TraitsSummary(in))
}

// TraitsSummary describes everything of an input record but the salary.
func TraitsSummary(in domain.TaxInput) string {
	in = in.Canonical()
	return fmt.Sprintf("%d payments, %s, %s regime, %s, %d dependents%s",
		in.PaymentCount,
		labelOr(categoryLabels, in.Category),
		labelOr(regimeLabels, in.Regime),
		labelOr(maritalLabels, in.MaritalStatus),
		in.Dependents,
		disabilitySuffix(in.HasDisability),
	)
}

func disabilitySuffix(has bool) string {
	if has {
		return ", disability"
	}
	return ""
}

// BracketSummary describes the applied bracket, or why there is none.
func BracketSummary(in domain.TaxInput, r *domain.TaxResult) string {
	b, ok := r.AppliedBracket.Get()
	if !ok {
		if in.Canonical().Regime == domain.RegimeFlat {
			return "n/a (flat regime)"
		}
		return "none (below minimum subsistence)"
	}
	upper := "and above"
	if b.Max != nil {
		upper = "to " + format.FormatCurrency(*b.Max)
	}
	return fmt.Sprintf("#%d: %s %s at %s", r.AppliedBracket.Number(),
		format.FormatCurrency(b.Min), upper, format.FormatRate(b.Rate))
}
