package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseChargeValue parses a charge value as a decimal amount. The second
// result is false when the value is not a number.
func ParseChargeValue(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SumCharges adds up the charge values. Values that do not parse count as
// zero; use ParseChargeValue to find them.
func SumCharges(charges []Charge) decimal.Decimal {
	total := decimal.Zero
	for _, charge := range charges {
		if v, ok := ParseChargeValue(charge.Value); ok {
			total = total.Add(v)
		}
	}
	return total
}

// InvalidCharges counts the charges whose value is not a number.
func InvalidCharges(charges []Charge) int {
	n := 0
	for _, charge := range charges {
		if _, ok := ParseChargeValue(charge.Value); !ok {
			n++
		}
	}
	return n
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
