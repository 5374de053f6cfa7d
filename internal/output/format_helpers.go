package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer        = message.NewPrinter(language.English)
	decimalHundred = decimal.NewFromInt(100)
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	r := amount.Round(2)
	if r.IsNegative() {
		return "-$" + printer.Sprintf("%.2f", r.Neg().InexactFloat64())
	}
	return "$" + printer.Sprintf("%.2f", r.InexactFloat64())
}

// FormatPercentage formats a fraction (0.5 == 50%) as a percentage with 2 decimals.
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(2) + "%"
}

// FormatKg formats a carbon mass rounded to whole kilograms.
func FormatKg(kg decimal.Decimal) string {
	return printer.Sprintf("%d", kg.Round(0).IntPart()) + " kg"
}
