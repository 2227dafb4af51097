package arena

import (
	"math"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/prefabs"
)

const (
	DefaultShipThrust         = 30.0
	DefaultShipTurnRate       = 2.5
	DefaultShipTopSpeed       = 40.0
	DefaultShipOverdriveSpeed = 120.0
	DefaultShipMaxForce       = 60.0

	DefaultFuelCapacity = 100.0
	DefaultFuelDrain    = 20.0
	DefaultFuelRegen    = 5.0
)

// Intents is what the pilot asks for this tick.
type Intents struct {
	Thrust    bool
	Brake     bool
	YawLeft   bool
	YawRight  bool
	PitchUp   bool
	PitchDown bool
	Overdrive bool
}

// Ship is the player's body. Its heading is steered directly by intents
// rather than following velocity, so it keeps its own yaw and pitch.
type Ship struct {
	b       *body.Body
	Intents Intents

	Yaw   float64
	Pitch float64
	Fuel  float64

	thrust         float64
	turnRate       float64
	topSpeed       float64
	overdriveSpeed float64
	fuelCapacity   float64
	fuelDrain      float64
	fuelRegen      float64
}

// NewShip builds a ship at loc. Zero fields in spec take the defaults.
func NewShip(loc common.Vec3, spec prefabs.ShipSpec) *Ship {
	s := &Ship{
		b:              body.New(loc),
		thrust:         orDefault(spec.Thrust, DefaultShipThrust),
		turnRate:       orDefault(spec.TurnRate, DefaultShipTurnRate),
		topSpeed:       orDefault(spec.TopSpeed, DefaultShipTopSpeed),
		overdriveSpeed: orDefault(spec.OverdriveSpeed, DefaultShipOverdriveSpeed),
		fuelCapacity:   orDefault(spec.Fuel.Capacity, DefaultFuelCapacity),
		fuelDrain:      orDefault(spec.Fuel.Drain, DefaultFuelDrain),
		fuelRegen:      orDefault(spec.Fuel.Regen, DefaultFuelRegen),
	}
	s.b.TopSpeed = s.topSpeed
	s.b.MaxForce = orDefault(spec.MaxForce, DefaultShipMaxForce)
	s.Fuel = s.fuelCapacity
	return s
}

func orDefault(v, d float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return d
	}
	return v
}

func (s *Ship) Body() *body.Body { return s.b }

func (s *Ship) Location() common.Vec3 { return s.b.Location }

func (s *Ship) Velocity() common.Vec3 { return s.b.Velocity }

func (s *Ship) Orientation() body.Orientation {
	return body.Orientation{Yaw: s.Yaw, Pitch: s.Pitch}
}

func (s *Ship) FuelCapacity() float64 { return s.fuelCapacity }

// Overdriven reports whether the last update ran above the overdrive
// threshold.
func (s *Ship) Overdriven() bool { return s.b.Overdrive }

func (s *Ship) Update(dt float64, bounds body.Bounds) {
	in := s.Intents

	if in.YawLeft {
		s.Yaw += s.turnRate * dt
	}
	if in.YawRight {
		s.Yaw -= s.turnRate * dt
	}
	if in.PitchUp {
		s.Pitch -= s.turnRate * dt
	}
	if in.PitchDown {
		s.Pitch += s.turnRate * dt
	}
	s.Pitch = common.Clamp(s.Pitch, -body.MaxPitch, body.MaxPitch)

	if in.Overdrive && s.Fuel > 0 {
		s.b.TopSpeed = s.overdriveSpeed
		s.Fuel = math.Max(s.Fuel-s.fuelDrain*dt, 0)
	} else {
		s.b.TopSpeed = s.topSpeed
		s.Fuel = math.Min(s.Fuel+s.fuelRegen*dt, s.fuelCapacity)
	}

	if in.Thrust {
		s.b.ApplyForce(s.Orientation().Forward().Scale(s.thrust).Limit(s.b.MaxForce))
	}
	if in.Brake {
		s.b.ApplyForce(s.b.Velocity.Scale(-1).Limit(s.b.MaxForce))
	}

	s.b.Integrate(dt, bounds)
}
