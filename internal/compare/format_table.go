package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("NET PAY SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Tax Year: %d\n\n", compSet.TaxYear))

	nameWidth := 28
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Net / payment",
		numWidth, "Net annual",
		numWidth, "IRS annual",
		numWidth, "Total rate"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Net annual:       %s (%s%%)\n",
				format.FormatSignedCurrency(alt.NetDiffFromBase),
				alt.NetPctFromBase.StringFixed(1)))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  IRS:              %s %s\n",
					format.FormatSignedCurrency(alt.TaxDiffFromBase), tf.betterWorse(alt.TaxDiffFromBase.Neg())))
			}
			if !alt.SocialSecurityDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Social security:  %s %s\n",
					format.FormatSignedCurrency(alt.SocialSecurityDiffFromBase), tf.betterWorse(alt.SocialSecurityDiffFromBase.Neg())))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-3]) + "..."
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, name,
		numWidth, format.FormatCurrency(result.NetMonthly),
		numWidth, format.FormatCurrency(result.NetAnnual),
		numWidth, format.FormatCurrency(result.IncomeTaxAnnual),
		numWidth, format.FormatPercent(result.EffectiveTotalRate))
}

// betterWorse labels a change where a positive value favours the taxpayer
func (tf *TableFormatter) betterWorse(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "(better)"
	case d.IsNegative():
		return "(worse)"
	default:
		return ""
	}
}
