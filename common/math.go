package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return cp.Lerp(a, b, t)
}

func Clamp(v, lo, hi float64) float64 {
	return cp.Clamp(v, lo, hi)
}

// MapRange linearly maps v from [inMin, inMax] onto [outMin, outMax].
// A degenerate input range maps everything to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if math.Abs(span) < Epsilon {
		return outMin
	}
	return outMin + (v-inMin)/span*(outMax-outMin)
}

// EuclidMod returns a mod n in [0, n) for n > 0.
func EuclidMod(a, n float64) float64 {
	r := math.Mod(a, n)
	if r < 0 {
		r += n
	}
	// math.Mod can round a tiny negative remainder up to exactly n.
	if r >= n {
		r = 0
	}
	return r
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
