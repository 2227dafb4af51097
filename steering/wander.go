package steering

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/alienfield/common"
)

const (
	WanderDistance = 10.0
	WanderRadius   = 10.0
	WanderJitter   = 0.3
)

// Wanderer keeps the drifting target angle used by wander steering. Each
// agent owns one.
type Wanderer struct {
	Angle float64
}

// NewWanderer starts at a random angle.
func NewWanderer(rng *rand.Rand) *Wanderer {
	return &Wanderer{Angle: rng.Float64() * 2 * math.Pi}
}

// Steer seeks a point on a circle projected ahead of the body, then nudges
// the angle by up to ±WanderJitter radians.
func (w *Wanderer) Steer(k Kinematics, rng *rand.Rand) common.Vec3 {
	if w == nil {
		return common.Vec3{}
	}
	ahead := k.Location.Add(k.Velocity.SetLength(WanderDistance))
	s, c := math.Sincos(w.Angle)
	target := ahead.Add(common.V3(WanderRadius*s, 0, WanderRadius*c))

	steer := Seek(k, target)

	if rng != nil {
		w.Angle += rng.Float64()*2*WanderJitter - WanderJitter
	}
	return steer
}
