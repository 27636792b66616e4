package analytics

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var frPrinter = message.NewPrinter(language.French)

// FormatCurrency renders an amount the way the back office stores it: "1 000,00 €".
func FormatCurrency(amount float64) string {
	return frPrinter.Sprintf("%v €", twoDecimals(finite(amount)))
}

// FormatPercent renders a fractional rate as a percentage: 0.09 -> "9,00 %".
func FormatPercent(rate float64) string {
	return frPrinter.Sprintf("%v %%", twoDecimals(finite(rate)*100))
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func twoDecimals(v float64) number.Formatter {
	return number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2))
}
