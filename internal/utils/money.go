package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney keeps consistent two-place formatting for currency fields.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatEuro renders an amount the German way: "1.234,56 EUR".
func FormatEuro(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := FormatMoney(amount)
	whole, cents, _ := strings.Cut(fixed, ".")
	return sign + formatThousand(whole) + "," + cents + " EUR"
}

func formatThousand(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
