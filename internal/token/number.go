package token

import (
	"math"
	"strconv"
)

// FormatNumber formats a number literal or value without exponent or
// trailing zeros: 7, 3.5, 0.1, inf, -inf, NaN.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == 0:
		// -0 prints as 0
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
