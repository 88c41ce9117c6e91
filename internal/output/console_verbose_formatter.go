package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the full breakdown of every scenario.
// The credits block only appears when credits apply or the marital split
// was used, and the surtax line only when surtax is due.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintf(&buf, "PORTUGUESE NET PAY ANALYSIS - TAX YEAR %d\n", report.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf)
	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, sc := range report.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		if sc.Description != "" {
			fmt.Fprintln(&buf, sc.Description)
		}
		fmt.Fprintf(&buf, "Profile: %s\n\n", ProfileSummary(sc.Input))
		writeBreakdown(&buf, sc.Input, sc.Result)
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-30s %16s\n", label, format.FormatCurrency(amount))
}

func deduction(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-30s %16s\n", label, "-"+format.FormatCurrency(amount))
}

func writeBreakdown(buf *bytes.Buffer, in domain.TaxInput, r *domain.TaxResult) {
	fmt.Fprintf(buf, "NET PAY: %s per payment, %s per year\n\n",
		format.FormatCurrency(r.NetMonthly), format.FormatCurrency(r.NetAnnual))

	fmt.Fprintf(buf, "PER PAYMENT (%d payments)\n", r.PaymentCount)
	line(buf, "Gross", r.GrossMonthly)
	deduction(buf, "Social security", r.SocialSecurityMonthly)
	deduction(buf, "IRS withholding (estimate)", r.IncomeTaxMonthly)
	line(buf, "Net", r.NetMonthly)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ANNUAL")
	line(buf, "Gross", r.GrossAnnual)
	deduction(buf, "Social security", r.SocialSecurityAnnual)
	line(buf, "Taxable income", r.TaxableIncome)
	deduction(buf, "IRS", r.IncomeTaxAnnual)
	if r.HasSurtax() {
		fmt.Fprintf(buf, "  %-30s %16s\n", "  of which solidarity surtax", format.FormatCurrency(r.Surtax))
	}
	line(buf, "Net", r.NetAnnual)
	fmt.Fprintln(buf)

	if r.HasCredits() || r.MaritalSplitApplied {
		fmt.Fprintln(buf, "TAX BENEFITS")
		if r.MaritalSplitApplied {
			fmt.Fprintf(buf, "  %-30s %16s\n", "Marital income split", "applied")
		}
		if r.DependentCredit.IsPositive() {
			deduction(buf, "Dependent credit", r.DependentCredit)
		}
		if r.DisabilityCredit.IsPositive() {
			deduction(buf, "Disability credit", r.DisabilityCredit)
		}
		if r.HasCredits() {
			deduction(buf, "Total tax credits", r.TotalCredits)
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf, "EFFECTIVE RATES")
	fmt.Fprintf(buf, "  IRS %s | Social security %s | Total %s\n",
		format.FormatPercent(r.EffectiveIncomeTaxRate),
		format.FormatPercent(r.EffectiveSocialSecurityRate),
		format.FormatPercent(r.EffectiveTotalRate))

	bracket := BracketSummary(in, r)
	if r.MaritalSplitApplied && r.AppliedBracket.Present() {
		bracket += " (on half the taxable income)"
	}
	fmt.Fprintf(buf, "Bracket: %s\n", bracket)
	if r.ContributionCapped {
		fmt.Fprintf(buf, "Social security capped at the %s monthly ceiling\n", format.FormatCurrency(r.ContributionCeiling))
	}
}
