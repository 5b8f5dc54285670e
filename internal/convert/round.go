package convert

import (
	"math"
	"strconv"
)

// roundTo rounds half away from zero to p decimal digits and
// normalizes negative zero.
func roundTo(v float64, p int) float64 {
	scale := math.Pow(10, float64(p))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// fmtNum prints a coordinate without trailing zeros.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
