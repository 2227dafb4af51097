// Package agent drives hostile aliens: a steered body plus a small state
// machine that wanders, pursues the player when it comes close and follows
// graph paths on request.
package agent

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/nav"
	"github.com/milk9111/alienfield/steering"
)

const (
	DefaultDetectionRadius = 35.0
	DefaultNormalSpeed     = 8.0
	DefaultPursuitSpeed    = 15.0
	DefaultPathfindSpeed   = 100.0

	// PursueLookAhead is how far ahead, in seconds, pursuit aims.
	PursueLookAhead = 1.0
	// WaypointReached is the distance at which a path waypoint counts as hit.
	WaypointReached = 10.0
	// AvoidWeight scales obstacle avoidance against the primary behaviour.
	AvoidWeight = 2.0
)

// Target is what aliens chase.
type Target interface {
	Location() common.Vec3
	Velocity() common.Vec3
}

// ObstacleSource returns the live obstacles. It is called once per update.
type ObstacleSource func() []steering.Obstacle

// Tuning holds the per-alien speeds and sensing radius.
type Tuning struct {
	DetectionRadius float64 `yaml:"detection_radius"`
	NormalSpeed     float64 `yaml:"normal_speed"`
	PursuitSpeed    float64 `yaml:"pursuit_speed"`
	PathfindSpeed   float64 `yaml:"pathfind_speed"`
	Mass            float64 `yaml:"mass"`
	MaxForce        float64 `yaml:"max_force"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DetectionRadius: DefaultDetectionRadius,
		NormalSpeed:     DefaultNormalSpeed,
		PursuitSpeed:    DefaultPursuitSpeed,
		PathfindSpeed:   DefaultPathfindSpeed,
		Mass:            body.DefaultMass,
		MaxForce:        body.DefaultMaxForce,
	}
}

// withDefaults fills zero fields from DefaultTuning.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.DetectionRadius <= 0 {
		t.DetectionRadius = d.DetectionRadius
	}
	if t.NormalSpeed <= 0 {
		t.NormalSpeed = d.NormalSpeed
	}
	if t.PursuitSpeed <= 0 {
		t.PursuitSpeed = d.PursuitSpeed
	}
	if t.PathfindSpeed <= 0 {
		t.PathfindSpeed = d.PathfindSpeed
	}
	if t.Mass <= 0 {
		t.Mass = d.Mass
	}
	if t.MaxForce <= 0 {
		t.MaxForce = d.MaxForce
	}
	return t
}

// Options wires an alien to the world. Only Player is required for
// sensing; everything else has a usable zero value.
type Options struct {
	Graph     *nav.Graph
	Player    Target
	Obstacles ObstacleSource
	Sensor    Sensor
	Rand      *rand.Rand
	Logger    *zerolog.Logger
	Tuning    Tuning
}

type Alien struct {
	b *body.Body

	id     string
	tuning Tuning

	graph     *nav.Graph
	player    Target
	obstacles ObstacleSource
	sensor    Sensor
	rng       *rand.Rand
	log       zerolog.Logger

	wanderer *steering.Wanderer
	state    State
	dead     bool

	goal    common.Vec3
	hasGoal bool

	updating     bool
	transitioned bool
	entering     int
}

// NewAlien places an alien at loc in the Wander state.
func NewAlien(loc common.Vec3, opts Options) *Alien {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sensor := opts.Sensor
	if sensor == nil {
		sensor = DefaultSensor()
	}

	a := &Alien{
		b:         body.New(loc),
		id:        uuid.New().String(),
		graph:     opts.Graph,
		player:    opts.Player,
		obstacles: opts.Obstacles,
		sensor:    sensor,
		rng:       rng,
		wanderer:  steering.NewWanderer(rng),
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	a.log = logger.With().Str("alien", a.id).Logger()

	a.Retune(opts.Tuning)
	a.b.TopSpeed = a.tuning.NormalSpeed

	a.Transition(Wander)
	return a
}

func (a *Alien) ID() string { return a.id }

// Body exposes the underlying point mass.
func (a *Alien) Body() *body.Body { return a.b }

func (a *Alien) Tuning() Tuning { return a.tuning }

// Retune swaps in new tuning. The active state's speed is re-applied so a
// change takes effect without waiting for the next transition.
func (a *Alien) Retune(t Tuning) {
	a.tuning = t.withDefaults()
	a.b.Mass = a.tuning.Mass
	a.b.MaxForce = a.tuning.MaxForce
	switch a.state.(type) {
	case *PathfindState:
		a.b.TopSpeed = a.tuning.PathfindSpeed
	case pursueState:
		a.b.TopSpeed = a.tuning.PursuitSpeed
	case wanderState:
		a.b.TopSpeed = a.tuning.NormalSpeed
	}
}

// SetSensor replaces the detection rule. nil restores the default.
func (a *Alien) SetSensor(s Sensor) {
	if s == nil {
		s = DefaultSensor()
	}
	a.sensor = s
}

func (a *Alien) Location() common.Vec3 { return a.b.Location }

func (a *Alien) Velocity() common.Vec3 { return a.b.Velocity }

func (a *Alien) Orientation() body.Orientation { return a.b.Orientation }

func (a *Alien) State() State { return a.state }

func (a *Alien) StateName() string {
	if a.state == nil {
		return ""
	}
	return a.state.Name()
}

// Goal is the point the alien is currently steering for, if any.
func (a *Alien) Goal() (common.Vec3, bool) { return a.goal, a.hasGoal }

func (a *Alien) setGoal(p common.Vec3) {
	a.goal = p
	a.hasGoal = true
}

func (a *Alien) clearGoal() {
	a.goal = common.Vec3{}
	a.hasGoal = false
}

func (a *Alien) Kill() { a.dead = true }

func (a *Alien) IsDead() bool { return a.dead }

// Transition switches to s and enters it straight away. Within one Update
// only the first transition a state asks for is honoured; fallbacks taken
// while entering the new state still go through.
func (a *Alien) Transition(s State) {
	if s == nil {
		return
	}
	if a.updating && a.transitioned && a.entering == 0 {
		a.log.Debug().Str("from", a.StateName()).Str("to", s.Name()).Msg("transition ignored; already changed state this tick")
		return
	}
	if a.updating {
		a.transitioned = true
	}

	from := a.StateName()
	a.state = s
	a.log.Debug().Str("from", from).Str("to", s.Name()).Msg("transition")

	a.entering++
	s.Enter(a)
	a.entering--
}

// Update runs the active state and integrates the body. Dead aliens do
// nothing.
func (a *Alien) Update(dt float64, bounds body.Bounds) {
	if a == nil || a.dead {
		return
	}

	a.updating = true
	a.transitioned = false
	if a.state != nil {
		a.state.Update(a, dt)
	}
	a.updating = false

	a.b.Integrate(dt, bounds)
}

func (a *Alien) kinematics() steering.Kinematics {
	return steering.Of(a.b)
}

// avoid applies the weighted avoidance force for the current obstacles.
func (a *Alien) avoid() {
	if a.obstacles == nil {
		return
	}
	f := steering.Avoid(a.kinematics(), a.obstacles())
	a.b.ApplyForce(f.Scale(AvoidWeight))
}

// playerReading measures the distance to the player. ok is false without a
// player.
func (a *Alien) playerReading() (Reading, bool) {
	if a.player == nil {
		return Reading{}, false
	}
	return Reading{
		Distance:        a.b.Location.Distance(a.player.Location()),
		DetectionRadius: a.tuning.DetectionRadius,
	}, true
}
