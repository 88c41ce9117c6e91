package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Net Monthly",
		"Net Annual",
		"Income Tax Annual",
		"Social Security Annual",
		"Effective Total Rate",
		"Net Diff from Base",
		"Net % Change",
		"Tax Diff from Base",
		"Social Security Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.ScenarioName,
		kind,
		result.NetMonthly.StringFixed(2),
		result.NetAnnual.StringFixed(2),
		result.IncomeTaxAnnual.StringFixed(2),
		result.SocialSecurityAnnual.StringFixed(2),
		result.EffectiveTotalRate.StringFixed(4),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.SocialSecurityDiffFromBase.StringFixed(2),
	}
}
