package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL parses a localized Brazilian currency string ("R$ 1.234,56") into
// an exact decimal. The parser is deliberately lenient: it keeps the digits
// only and reads the last two as cents, so any thousands separator, decimal
// comma or currency prefix is accepted. Empty or non-numeric input coerces
// to zero rather than erroring; the callers are trusted UI forms.
func ParseBRL(s string) decimal.Decimal {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-2)
}

// FormatBRL renders a decimal as a Brazilian currency string with thousands
// dots and a decimal comma: 1234.56 -> "R$ 1.234,56". Negative values keep
// the sign ahead of the symbol: "-R$ 500,00".
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return sign + "R$ " + grouped.String() + "," + fracPart
}
