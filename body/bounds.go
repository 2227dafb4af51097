package body

import "github.com/milk9111/alienfield/common"

// Bounds is an axis-aligned box. Locations wrap into the half-open range
// [Min, Max) on every axis.
type Bounds struct {
	Min common.Vec3
	Max common.Vec3
}

func NewBounds(min, max common.Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// Cube returns bounds spanning [-half, half] on every axis.
func Cube(half float64) Bounds {
	return Bounds{Min: common.V3(-half, -half, -half), Max: common.V3(half, half, half)}
}

func (b Bounds) Span() common.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Center() common.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies in [Min, Max) on every axis. Degenerate
// axes (Min == Max) accept only Min.
func (b Bounds) Contains(p common.Vec3) bool {
	return axisContains(p.X, b.Min.X, b.Max.X) &&
		axisContains(p.Y, b.Min.Y, b.Max.Y) &&
		axisContains(p.Z, b.Min.Z, b.Max.Z)
}

func axisContains(v, lo, hi float64) bool {
	if hi <= lo {
		return v == lo
	}
	return v >= lo && v < hi
}

// Wrap moves p into the box by Euclidean modulo per axis, so a body leaving
// one face re-enters through the opposite face at the same offset.
func (b Bounds) Wrap(p common.Vec3) common.Vec3 {
	return common.Vec3{
		X: wrapAxis(p.X, b.Min.X, b.Max.X),
		Y: wrapAxis(p.Y, b.Min.Y, b.Max.Y),
		Z: wrapAxis(p.Z, b.Min.Z, b.Max.Z),
	}
}

func wrapAxis(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return v
	}
	w := lo + common.EuclidMod(v-lo, span)
	if w >= hi {
		// a remainder just under span can round up onto hi
		return lo
	}
	return w
}
