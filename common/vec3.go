package common

import (
	"fmt"
	"math"
)

// Vec3 is an immutable 3D vector; every operation returns a new value.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Div divides by s. Division by zero yields the zero vector.
func (v Vec3) Div(s float64) Vec3 {
	if s == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

func (v Vec3) IsZero() bool {
	return v.LenSq() < Epsilon*Epsilon
}

// Normalize returns the unit vector, or zero for a zero-length input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// SetLength rescales v to length l keeping direction; zero stays zero.
func (v Vec3) SetLength(l float64) Vec3 {
	return v.Normalize().Scale(l)
}

// Limit caps the length of v at max.
func (v Vec3) Limit(max float64) Vec3 {
	if max <= 0 {
		return Vec3{}
	}
	if v.LenSq() > max*max {
		return v.SetLength(max)
	}
	return v
}

// RotateY rotates v by angle radians about the +Y axis (right-handed).
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
