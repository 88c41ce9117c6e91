package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
	"github.com/shopspring/decimal"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
	pdfLabelWidth   = 110.0
)

// PDFFormatter renders an A4 report, one page per scenario.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf *fpdf.Fpdf
	// tr converts UTF-8 to the cp1252 encoding of the core fonts, so the
	// euro sign survives.
	tr func(string) string
}

func (p PDFFormatter) Format(report *domain.Report) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.SetAutoPageBreak(true, pdfMarginBottom)
	r := &pdfReport{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	r.addTitlePage(report)
	for i, sc := range report.Scenarios {
		r.addScenarioPage(i+1, sc)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addTitlePage(report *domain.Report) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(30)
	r.pdf.CellFormat(pdfContentWidth, 12, "Portuguese Net Pay Analysis", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 14)
	r.pdf.CellFormat(pdfContentWidth, 10, fmt.Sprintf("Tax year %d", report.TaxYear), "", 1, "C", false, 0, "")
	r.pdf.Ln(15)

	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.CellFormat(70, 8, "Scenario", "1", 0, "L", true, 0, "")
	r.pdf.CellFormat(40, 8, "Gross annual", "1", 0, "R", true, 0, "")
	r.pdf.CellFormat(40, 8, "Net annual", "1", 0, "R", true, 0, "")
	r.pdf.CellFormat(30, 8, "Total rate", "1", 1, "R", true, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	for _, sc := range report.Scenarios {
		r.pdf.CellFormat(70, 7, r.tr(truncate(sc.Name, 34)), "1", 0, "L", false, 0, "")
		r.pdf.CellFormat(40, 7, r.money(sc.Result.GrossAnnual), "1", 0, "R", false, 0, "")
		r.pdf.CellFormat(40, 7, r.money(sc.Result.NetAnnual), "1", 0, "R", false, 0, "")
		r.pdf.CellFormat(30, 7, r.tr(format.FormatPercent(sc.Result.EffectiveTotalRate)), "1", 1, "R", false, 0, "")
	}

	if len(report.Assumptions) > 0 {
		r.pdf.Ln(10)
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.CellFormat(pdfContentWidth, 7, "Assumptions", "", 1, "L", false, 0, "")
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetTextColor(80, 80, 80)
		for _, a := range report.Assumptions {
			r.pdf.MultiCell(pdfContentWidth, 4.5, r.tr("- "+a), "", "L", false)
		}
	}
}

func (r *pdfReport) money(d decimal.Decimal) string {
	return r.tr(format.FormatCurrency(d))
}

func (r *pdfReport) section(title string) {
	r.pdf.Ln(3)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 7, title, "B", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) row(label, value string) {
	r.pdf.CellFormat(pdfLabelWidth, 6, r.tr(label), "", 0, "L", false, 0, "")
	r.pdf.CellFormat(pdfContentWidth-pdfLabelWidth, 6, value, "", 1, "R", false, 0, "")
}

func (r *pdfReport) addScenarioPage(n int, sc domain.ScenarioResult) {
	res := sc.Result
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, r.tr(fmt.Sprintf("Scenario %d: %s", n, sc.Name)), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(80, 80, 80)
	if sc.Description != "" {
		r.pdf.MultiCell(pdfContentWidth, 5, r.tr(sc.Description), "", "L", false)
	}
	r.pdf.MultiCell(pdfContentWidth, 5, r.tr(ProfileSummary(sc.Input)), "", "L", false)

	r.section(fmt.Sprintf("Per payment (%d payments)", res.PaymentCount))
	r.row("Gross", r.money(res.GrossMonthly))
	r.row("Social security", "-"+r.money(res.SocialSecurityMonthly))
	r.row("IRS withholding (estimate)", "-"+r.money(res.IncomeTaxMonthly))
	r.row("Net", r.money(res.NetMonthly))

	r.section("Annual")
	r.row("Gross", r.money(res.GrossAnnual))
	r.row("Social security", "-"+r.money(res.SocialSecurityAnnual))
	r.row("Taxable income", r.money(res.TaxableIncome))
	r.row("IRS", "-"+r.money(res.IncomeTaxAnnual))
	if res.HasSurtax() {
		r.row("  of which solidarity surtax", r.money(res.Surtax))
	}
	r.row("Net", r.money(res.NetAnnual))

	if res.HasCredits() || res.MaritalSplitApplied {
		r.section("Tax benefits")
		if res.MaritalSplitApplied {
			r.row("Marital income split", "applied")
		}
		if res.DependentCredit.IsPositive() {
			r.row("Dependent credit", "-"+r.money(res.DependentCredit))
		}
		if res.DisabilityCredit.IsPositive() {
			r.row("Disability credit", "-"+r.money(res.DisabilityCredit))
		}
		if res.HasCredits() {
			r.row("Total tax credits", "-"+r.money(res.TotalCredits))
		}
	}

	r.section("Effective rates")
	r.row("IRS", r.tr(format.FormatPercent(res.EffectiveIncomeTaxRate)))
	r.row("Social security", r.tr(format.FormatPercent(res.EffectiveSocialSecurityRate)))
	r.row("Total", r.tr(format.FormatPercent(res.EffectiveTotalRate)))
	r.row("Bracket", r.tr(BracketSummary(sc.Input, res)))
	if res.ContributionCapped {
		r.row("Social security ceiling (monthly)", r.money(res.ContributionCeiling))
	}
}
