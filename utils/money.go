package utils

import (
	"math"
	"strconv"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatAmount renders a rupee amount with two decimals for display.
// Display is the only layer where rounding happens; stored totals stay raw.
func FormatAmount(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	return "₹" + strconv.FormatFloat(Round2(x), 'f', 2, 64)
}
