package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatAmount renders d with exactly two fraction digits and the decimal
// separator of lang, e.g. "1234.50" for en and "1234,50" for de. Grouping
// separators are not emitted; the dashboard cards and chart tooltips expect
// plain numbers.
func FormatAmount(d decimal.Decimal, lang string) string {
	s := d.StringFixed(2)
	if sep := decimalSeparator(lang); sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}

// decimalSeparator probes the CLDR data for lang by formatting 1.1 and
// reading back the rune between the digits.
func decimalSeparator(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "."
	}
	probe := []rune(message.NewPrinter(tag).Sprint(number.Decimal(1.1)))
	if len(probe) == 3 {
		return string(probe[1])
	}
	return "."
}
