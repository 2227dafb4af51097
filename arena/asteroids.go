package arena

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/steering"
)

const (
	DefaultAsteroidMaxRadius = 60.0
	MinAsteroidRadius        = 1.0
)

// ScatterAsteroids places n spheres uniformly inside bounds. Radii are the
// product of two uniform draws, so small rocks are far more common than big
// ones.
func ScatterAsteroids(rng *rand.Rand, bounds body.Bounds, n int, maxRadius float64) []steering.Sphere {
	if n <= 0 {
		return nil
	}
	if maxRadius <= 0 {
		maxRadius = DefaultAsteroidMaxRadius
	}

	out := make([]steering.Sphere, 0, n)
	for i := 0; i < n; i++ {
		r := math.Max(rng.Float64()*rng.Float64()*maxRadius, MinAsteroidRadius)
		out = append(out, steering.Sphere{Center: randomPoint(rng, bounds), R: r})
	}
	return out
}

// randomPoint draws uniformly from bounds.
func randomPoint(rng *rand.Rand, bounds body.Bounds) common.Vec3 {
	return common.V3(
		common.Lerp(bounds.Min.X, bounds.Max.X, rng.Float64()),
		common.Lerp(bounds.Min.Y, bounds.Max.Y, rng.Float64()),
		common.Lerp(bounds.Min.Z, bounds.Max.Z, rng.Float64()),
	)
}
