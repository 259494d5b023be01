// Package format holds the display-boundary currency conversions. The
// engine works in integer cents everywhere; dollars appear only here.
package format

import (
	"fmt"
	"math"
)

// DollarsToCents converts a display amount to cents, rounding half up.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// CentsToDollars converts cents to a display amount.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100.0
}

// USD renders cents as a dollar string, e.g. "$50.00".
func USD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
