// Package format renders money and rates for display in European Portuguese
// conventions: comma decimal separator, euro sign after the amount.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var hundred = decimal.NewFromInt(100)

func printer() *message.Printer {
	return message.NewPrinter(language.EuropeanPortuguese)
}

// FormatCurrency renders an amount with two decimals and the euro sign,
// e.g. "1 749,19 €".
func FormatCurrency(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	return printer().Sprintf("%v €", number.Decimal(v, number.Scale(2)))
}

// FormatSignedCurrency is FormatCurrency with an explicit "+" for positive
// amounts, for deltas.
func FormatSignedCurrency(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + FormatCurrency(amount)
	}
	return FormatCurrency(amount)
}

// FormatPercent renders a fraction as a percentage with one decimal:
// 0.2 becomes "20,0 %".
func FormatPercent(rate decimal.Decimal) string {
	v := rate.Mul(hundred).Round(1).InexactFloat64()
	return printer().Sprintf("%v %%", number.Decimal(v, number.Scale(1)))
}

// FormatRate renders a statutory rate such as a bracket rate. Unlike
// FormatPercent it keeps two decimals (0.125 becomes "12,50 %").
func FormatRate(rate decimal.Decimal) string {
	v := rate.Mul(hundred).Round(2).InexactFloat64()
	return printer().Sprintf("%v %%", number.Decimal(v, number.Scale(2)))
}
