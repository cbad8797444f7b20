package assistant

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// formatAmount renders d with the given decimal places and comma thousands separators
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func formatUSD(d decimal.Decimal) string {
	return "$" + formatAmount(d, 2)
}

func formatWholeUSD(d decimal.Decimal) string {
	return "$" + formatAmount(d, 0)
}

// direction returns the verb for a signed change and its magnitude
func direction(change decimal.Decimal) (string, decimal.Decimal) {
	if change.IsNegative() {
		return "decreased", change.Abs()
	}
	return "increased", change
}

// signedPercent renders a change as "+2.50%" or "-1.20%"
func signedPercent(change decimal.Decimal) string {
	s := change.StringFixed(2)
	if !change.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}

// percentChange returns the change from start to end in percent. start must not be zero.
func percentChange(start, end decimal.Decimal) decimal.Decimal {
	return end.Sub(start).Div(start).Mul(hundred)
}
