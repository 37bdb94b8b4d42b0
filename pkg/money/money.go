// Package money formats amounts for display. Grouping is
// locale-sensitive and purely a presentation concern; the underlying
// amounts stay plain float64s with NaN as the degraded-field sentinel.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as locale-grouped currency strings.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a Formatter for a BCP 47 locale tag such as
// "en-US". Unknown tags fall back to English grouping.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders an amount with the currency symbol and locale grouping,
// e.g. "$1,234.56". A NaN amount renders as the degraded sentinel
// "$NaN", matching how such rows are displayed rather than dropped.
func (f *Formatter) Format(amount float64) string {
	if math.IsNaN(amount) {
		return f.symbol + "NaN"
	}
	return f.printer.Sprintf("%s%v", f.symbol, number.Decimal(amount))
}
