// Package steering computes bounded steering forces for point-mass bodies.
// Every function here is pure apart from Wanderer, which keeps its angle
// between calls.
package steering

import (
	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
)

// ArrivedDistance is the distance under which Arrive stops pushing.
const ArrivedDistance = 0.01

// Kinematics is the read-only slice of body state steering needs.
type Kinematics struct {
	Location  common.Vec3
	Velocity  common.Vec3
	TopSpeed  float64
	MaxForce  float64
	Overdrive bool
}

// Of captures the steering view of b.
func Of(b *body.Body) Kinematics {
	if b == nil {
		return Kinematics{}
	}
	return Kinematics{
		Location:  b.Location,
		Velocity:  b.Velocity,
		TopSpeed:  b.TopSpeed,
		MaxForce:  b.MaxForce,
		Overdrive: b.Overdrive,
	}
}

// Seek steers toward target at top speed.
func Seek(k Kinematics, target common.Vec3) common.Vec3 {
	desired := target.Sub(k.Location).SetLength(k.TopSpeed)
	return desired.Sub(k.Velocity).Limit(k.MaxForce)
}

// Arrive is Seek with a linear slowdown inside slowRadius.
func Arrive(k Kinematics, target common.Vec3, slowRadius float64) common.Vec3 {
	offset := target.Sub(k.Location)
	distance := offset.Len()
	if distance < ArrivedDistance {
		return common.Vec3{}
	}

	speed := k.TopSpeed
	if distance < slowRadius {
		speed = common.MapRange(distance, 0, slowRadius, 0, k.TopSpeed)
	}
	desired := offset.SetLength(speed)
	return desired.Sub(k.Velocity).Limit(k.MaxForce)
}

// Pursue seeks where the quarry will be after lookAhead seconds.
func Pursue(k Kinematics, quarryLoc, quarryVel common.Vec3, lookAhead float64) common.Vec3 {
	predicted := quarryLoc.Add(quarryVel.Scale(lookAhead))
	return Seek(k, predicted)
}
