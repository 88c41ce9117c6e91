package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/domain"
	"github.com/rgehrsitz/ptpay/internal/format"
)

// ConsoleFormatter prints one summary line per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "NET PAY SUMMARY (tax year %d)\n", report.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 86))
	fmt.Fprintf(&buf, "%-24s %16s %16s %16s %10s\n", "Scenario", "Gross annual", "Net annual", "Net / payment", "Total")
	fmt.Fprintln(&buf, strings.Repeat("-", 86))
	for _, sc := range report.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%-24s %16s %16s %16s %10s\n",
			truncate(sc.Name, 24),
			format.FormatCurrency(r.GrossAnnual),
			format.FormatCurrency(r.NetAnnual),
			format.FormatCurrency(r.NetMonthly),
			format.FormatPercent(r.EffectiveTotalRate),
		)
	}
	if len(report.Scenarios) == 0 {
		fmt.Fprintln(&buf, "(no scenarios)")
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
