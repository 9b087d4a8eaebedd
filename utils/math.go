package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ModProduct returns the remainder of the product of factors divided by m, with the sign of the
// product. It stays finite when the product itself would overflow, as long as every factor is finite.
func ModProduct(m float64, factors ...float64) float64 {
	p := 1.0
	for _, f := range factors {
		p *= f
	}
	if !math.IsInf(p, 0) {
		return math.Mod(p, m)
	}
	frac, exp := 1.0, 0
	for _, f := range factors {
		fr, e := math.Frexp(f)
		frac *= fr
		exp += e
	}
	r := frac
	for exp > 0 {
		step := min(exp, 512)
		r = math.Mod(math.Ldexp(r, step), m)
		exp -= step
	}
	return math.Ldexp(r, exp)
}
