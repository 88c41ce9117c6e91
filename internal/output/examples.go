package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rgehrsitz/ptpay/internal/calculation"
	"github.com/rgehrsitz/ptpay/internal/format"
)

// FormatExamplesTable renders a salary table for the console.
func FormatExamplesTable(rows []calculation.ExampleRow) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%14s %14s %14s %14s %14s %8s\n", "Gross", "Social sec.", "IRS", "Net", "Net annual", "Rate")
	fmt.Fprintln(&buf, strings.Repeat("-", 83))
	for _, row := range rows {
		r := row.Result
		fmt.Fprintf(&buf, "%14s %14s %14s %14s %14s %8s\n",
			format.FormatCurrency(r.GrossMonthly),
			format.FormatCurrency(r.SocialSecurityMonthly),
			format.FormatCurrency(r.IncomeTaxMonthly),
			format.FormatCurrency(r.NetMonthly),
			format.FormatCurrency(r.NetAnnual),
			format.FormatPercent(r.EffectiveTotalRate),
		)
	}
	return buf.String()
}

// FormatExamplesCSV renders a salary table as CSV with plain decimal amounts.
func FormatExamplesCSV(rows []calculation.ExampleRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"GrossMonthly", "SocialSecurityMonthly", "IncomeTaxMonthly", "NetMonthly", "NetAnnual", "EffectiveTotalRate"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		r := row.Result
		if err := w.Write([]string{
			r.GrossMonthly.StringFixed(2),
			r.SocialSecurityMonthly.StringFixed(2),
			r.IncomeTaxMonthly.StringFixed(2),
			r.NetMonthly.StringFixed(2),
			r.NetAnnual.StringFixed(2),
			r.EffectiveTotalRate.StringFixed(4),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
