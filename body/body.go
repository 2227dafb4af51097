package body

import (
	"math"

	"github.com/milk9111/alienfield/common"
)

const (
	DefaultMass               = 1.0
	DefaultTopSpeed           = 12.0
	DefaultMaxForce           = 20.0
	DefaultOverdriveThreshold = 50.0

	// MinHeadingSpeed is the speed below which orientation is left alone.
	MinHeadingSpeed = 0.001
	// MaxPitch limits nose up/down so a body never flips over the pole.
	MaxPitch = 60 * math.Pi / 180
)

// Orientation holds Euler angles in radians, applied yaw then pitch then roll.
type Orientation struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Body is a point mass with bounded speed and steering force. Forces are
// accumulated with ApplyForce and folded into motion once per tick by
// Integrate.
type Body struct {
	Location     common.Vec3
	Velocity     common.Vec3
	Acceleration common.Vec3

	Mass     float64
	TopSpeed float64
	MaxForce float64

	// OverdriveThreshold is the top speed above which the body counts as
	// overdriven. Overdrive is recomputed on every Integrate.
	OverdriveThreshold float64
	Overdrive          bool

	Orientation Orientation
}

// New returns a body at loc with the default mass and limits.
func New(loc common.Vec3) *Body {
	return &Body{
		Location:           loc,
		Mass:               DefaultMass,
		TopSpeed:           DefaultTopSpeed,
		MaxForce:           DefaultMaxForce,
		OverdriveThreshold: DefaultOverdriveThreshold,
	}
}

// ApplyForce accumulates f/mass into the acceleration for this tick.
func (b *Body) ApplyForce(f common.Vec3) {
	if b == nil || !f.IsFinite() {
		return
	}
	m := b.Mass
	if m <= 0 {
		m = 1
	}
	b.Acceleration = b.Acceleration.Add(f.Scale(1 / m))
}

// Integrate advances the body by dt seconds and wraps it into bounds.
func (b *Body) Integrate(dt float64, bounds Bounds) {
	if b == nil {
		return
	}

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	if b.Velocity.LenSq() > b.TopSpeed*b.TopSpeed {
		b.Velocity = b.Velocity.SetLength(math.Max(b.TopSpeed, 0))
	}

	b.Location = bounds.Wrap(b.Location.Add(b.Velocity.Scale(dt)))

	if b.Velocity.Len() > MinHeadingSpeed {
		b.Orientation = HeadingFor(b.Velocity)
	}

	b.Acceleration = common.Vec3{}
	b.Overdrive = b.TopSpeed > b.OverdriveThreshold
}

// HeadingFor derives yaw and clamped pitch from a direction of travel.
func HeadingFor(v common.Vec3) Orientation {
	horizontal := math.Hypot(v.X, v.Z)
	return Orientation{
		Yaw:   math.Atan2(v.X, v.Z),
		Pitch: common.Clamp(-math.Atan2(v.Y, horizontal), -MaxPitch, MaxPitch),
	}
}

// Forward returns the unit vector the orientation faces.
func (o Orientation) Forward() common.Vec3 {
	sy, cy := math.Sincos(o.Yaw)
	sp, cp := math.Sincos(o.Pitch)
	return common.Vec3{X: sy * cp, Y: -sp, Z: cy * cp}
}

func (b *Body) Speed() float64 {
	if b == nil {
		return 0
	}
	return b.Velocity.Len()
}
