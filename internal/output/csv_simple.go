package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/rgehrsitz/ptpay/internal/domain"
)

// CSVSummarizer writes one row per scenario with the headline figures.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "GrossAnnual", "SocialSecurityAnnual", "IncomeTaxAnnual", "NetAnnual", "NetMonthly", "EffectiveTotalRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), report.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		row := []string{
			sc.Name,
			r.GrossAnnual.StringFixed(2),
			r.SocialSecurityAnnual.StringFixed(2),
			r.IncomeTaxAnnual.StringFixed(2),
			r.NetAnnual.StringFixed(2),
			r.NetMonthly.StringFixed(2),
			r.EffectiveTotalRate.StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes every input and result field, in scenario order.
type DetailedCSVFormatter struct{}

func (c DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (c DetailedCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "SalaryMode", "GrossSalary", "PaymentCount", "Category", "Regime", "MaritalStatus", "Dependents", "Disability",
		"GrossMonthly", "GrossAnnual", "SocialSecurityMonthly", "SocialSecurityAnnual", "TaxableIncome",
		"IncomeTaxBeforeCredits", "TotalCredits", "Surtax", "IncomeTaxAnnual", "IncomeTaxMonthly",
		"NetMonthly", "NetAnnual", "EffectiveIncomeTaxRate", "EffectiveSocialSecurityRate", "EffectiveTotalRate",
		"Bracket", "MaritalSplit", "ContributionCapped",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		in, r := sc.Input, sc.Result
		row := []string{
			sc.Name, string(in.SalaryMode), in.GrossSalary.StringFixed(2), strconv.Itoa(in.PaymentCount),
			string(in.Category), string(in.Regime), string(in.MaritalStatus), strconv.Itoa(in.Dependents), strconv.FormatBool(in.HasDisability),
			r.GrossMonthly.StringFixed(2), r.GrossAnnual.StringFixed(2), r.SocialSecurityMonthly.StringFixed(2), r.SocialSecurityAnnual.StringFixed(2),
			r.TaxableIncome.StringFixed(2), r.IncomeTaxBeforeCredits.StringFixed(2), r.TotalCredits.StringFixed(2), r.Surtax.StringFixed(2),
			r.IncomeTaxAnnual.StringFixed(2), r.IncomeTaxMonthly.StringFixed(2), r.NetMonthly.StringFixed(2), r.NetAnnual.StringFixed(2),
			r.EffectiveIncomeTaxRate.StringFixed(4), r.EffectiveSocialSecurityRate.StringFixed(4), r.EffectiveTotalRate.StringFixed(4),
			strconv.Itoa(r.AppliedBracket.Number()), strconv.FormatBool(r.MaritalSplitApplied), strconv.FormatBool(r.ContributionCapped),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
