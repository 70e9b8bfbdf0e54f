package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places shown for amounts.
const MoneyPlaces = 2

// FormatMoney formats an amount as a string like "$12,500.00".
// The amount is rounded half away from zero to two places; comma is the thousands separator.
// Currencies other than USD are prefixed by their code, e.g. "EUR 12,500.00".
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := RoundMoney(amount).StringFixed(MoneyPlaces)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + symbol
	b.Grow(len(s) + len(intPart)/3 + len(currency) + 2)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(currencyPrefix(currency))

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)

	return b.String()
}

// RoundMoney rounds an amount to the displayed precision.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

func currencyPrefix(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == "USD" {
		return "$"
	}
	return code + " "
}
