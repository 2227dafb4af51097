package steering

import (
	"math"

	"github.com/milk9111/alienfield/common"
)

const (
	DefaultObstacleRadius = 5.0
	AvoidClearance        = 5.0

	CenterWhiskerLength = 20.0
	SideWhiskerLength   = 10.0
	// OverdriveWhiskerScale stretches the centre whisker at overdrive speeds.
	OverdriveWhiskerScale = 10.0
)

// SideWhiskerAngle is the yaw offset of the two side whiskers.
var SideWhiskerAngle = common.Deg2Rad(50)

// Obstacle is anything with a bounding sphere.
type Obstacle interface {
	Position() common.Vec3
	Radius() float64
}

// Sphere is the plain bounding-sphere obstacle.
type Sphere struct {
	Center common.Vec3
	R      float64
}

func (s Sphere) Position() common.Vec3 { return s.Center }
func (s Sphere) Radius() float64       { return s.R }

// radiusOf falls back to DefaultObstacleRadius when the obstacle cannot say.
func radiusOf(o Obstacle) float64 {
	r := o.Radius()
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return DefaultObstacleRadius
	}
	return r
}

// Whiskers returns the centre, left and right probe rays for k.
func Whiskers(k Kinematics) []common.Vec3 {
	dir := k.Velocity.Normalize()
	if dir.IsZero() {
		return nil
	}
	center := CenterWhiskerLength
	if k.Overdrive {
		center *= OverdriveWhiskerScale
	}
	return []common.Vec3{
		dir.Scale(center),
		dir.RotateY(SideWhiskerAngle).Scale(SideWhiskerLength),
		dir.RotateY(-SideWhiskerAngle).Scale(SideWhiskerLength),
	}
}

// Nearest returns the obstacle whose centre is closest to p. Ties keep the
// earlier obstacle.
func Nearest(p common.Vec3, obstacles []Obstacle) (Obstacle, bool) {
	var best Obstacle
	bestDist := math.Inf(1)
	for _, o := range obstacles {
		if o == nil {
			continue
		}
		if d := o.Position().Distance(p); d < bestDist {
			best = o
			bestDist = d
		}
	}
	return best, best != nil
}

// Avoid probes the nearest obstacle with three whiskers and steers each
// hitting whisker toward a point just outside the obstacle surface.
func Avoid(k Kinematics, obstacles []Obstacle) common.Vec3 {
	if len(obstacles) == 0 {
		return common.Vec3{}
	}
	obstacle, ok := Nearest(k.Location, obstacles)
	if !ok {
		return common.Vec3{}
	}

	var total common.Vec3
	for _, ray := range Whiskers(k) {
		total = total.Add(avoidAlong(k, obstacle, ray))
	}
	return total.Limit(k.MaxForce)
}

func avoidAlong(k Kinematics, obstacle Obstacle, ray common.Vec3) common.Vec3 {
	length := ray.Len()
	if length < common.Epsilon {
		return common.Vec3{}
	}
	dir := ray.Scale(1 / length)
	center := obstacle.Position()
	radius := radiusOf(obstacle)

	projection := center.Sub(k.Location).Dot(dir)
	closest := k.Location.Add(dir.Scale(common.Clamp(projection, 0, length)))
	if closest.Distance(center) > radius {
		return common.Vec3{}
	}

	contact := contactPoint(k.Location, dir, center, radius, projection)
	normal := contact.Sub(center).SetLength(AvoidClearance)
	if normal.IsZero() {
		// contact at the centre: push sideways off the ray instead
		normal = dir.RotateY(math.Pi / 2).Scale(AvoidClearance)
	}
	return Seek(k, contact.Add(normal))
}

// contactPoint is where the ray first enters the sphere.
func contactPoint(origin, dir, center common.Vec3, radius, projection float64) common.Vec3 {
	foot := origin.Add(dir.Scale(projection))
	offset := foot.Distance(center)
	adj := math.Sqrt(math.Max(radius*radius-offset*offset, 0))
	return origin.Add(dir.Scale(projection - adj))
}
