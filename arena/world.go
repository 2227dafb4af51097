// Package arena wires the player ship, the asteroid field and the aliens
// into a fixed-order tick.
package arena

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/agent"
	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/nav"
	"github.com/milk9111/alienfield/prefabs"
	"github.com/milk9111/alienfield/steering"
)

const (
	DefaultHalfExtent = 400.0
	DefaultCellSize   = 100.0
	DefaultAliens     = 6
	DefaultAsteroids  = 40
)

type Config struct {
	Bounds   body.Bounds
	CellSize float64
	// Aliens and Asteroids are the counts placed by New. Negative means
	// none; zero means the default.
	Aliens    int
	Asteroids int
	Seed      uint64

	Prefabs prefabs.Set
	// Source resolves the alien sensor script named in Prefabs.
	Source  prefabs.Source
	Sensor  agent.Sensor
	Logger  *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Bounds.Span().IsZero() {
		c.Bounds = body.Cube(DefaultHalfExtent)
	}
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	if c.Aliens == 0 {
		c.Aliens = DefaultAliens
	}
	if c.Asteroids == 0 {
		c.Asteroids = c.Prefabs.Asteroids.Count
	}
	if c.Asteroids == 0 {
		c.Asteroids = DefaultAsteroids
	}
	return c
}

// World owns every moving thing in the arena and the order they update in.
type World struct {
	bounds    body.Bounds
	graph     *nav.Graph
	ship      *Ship
	aliens    []*agent.Alien
	asteroids []steering.Obstacle

	tuning agent.Tuning
	sensor agent.Sensor
	rng    *rand.Rand
	log    zerolog.Logger

	scheduler *Scheduler
	events    EventQueue
	tick      uint64
}

// New builds the graph, scatters the asteroid field, puts the ship at the
// centre and spawns the configured aliens.
func New(cfg Config) *World {
	cfg = cfg.withDefaults()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	w := &World{
		bounds:    cfg.Bounds,
		graph:     nav.NewGraph(cfg.Bounds, cfg.CellSize),
		ship:      NewShip(cfg.Bounds.Center(), cfg.Prefabs.Ship),
		tuning:    TuningFromSpec(cfg.Prefabs.Alien),
		sensor:    cfg.Sensor,
		rng:       rng,
		log:       log,
		scheduler: NewScheduler(),
	}
	w.scheduler.Add(PhaseShip, ShipSystem{})
	w.scheduler.Add(PhaseAgents, AgentSystem{})
	w.scheduler.Add(PhaseReap, ReaperSystem{})

	if w.sensor == nil {
		w.sensor = SensorFromSpec(cfg.Source, cfg.Prefabs.Alien, log)
	}

	for _, s := range ScatterAsteroids(rng, cfg.Bounds, cfg.Asteroids, cfg.Prefabs.Asteroids.MaxRadius) {
		w.asteroids = append(w.asteroids, s)
	}
	for i := 0; i < cfg.Aliens; i++ {
		w.Spawn()
	}

	w.log.Info().
		Int("nodes", w.graph.Len()).
		Int("asteroids", len(w.asteroids)).
		Int("aliens", len(w.aliens)).
		Uint64("seed", seed).
		Msg("arena ready")
	return w
}

// Update runs one tick: ship, then aliens, then removal of the dead.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.tick++
	w.scheduler.Update(w, dt)
}

// Spawn adds an alien at a random point and sends it toward the ship.
func (w *World) Spawn() *agent.Alien {
	return w.SpawnAt(randomPoint(w.rng, w.bounds))
}

func (w *World) SpawnAt(loc common.Vec3) *agent.Alien {
	a := agent.NewAlien(loc, agent.Options{
		Graph:     w.graph,
		Player:    w.ship,
		Obstacles: w.Obstacles,
		Sensor:    w.sensor,
		Rand:      rand.New(rand.NewPCG(w.rng.Uint64(), w.rng.Uint64())),
		Logger:    &w.log,
		Tuning:    w.tuning,
	})
	a.Transition(agent.NewPathfind(w.ship.Location()))

	w.aliens = append(w.aliens, a)
	w.events.Push(Event{Type: EventSpawned, AlienID: a.ID(), Tick: w.tick})
	return a
}

// Recall sends every live alien pathfinding to the ship's current location
// and returns how many were sent.
func (w *World) Recall() int {
	n := 0
	target := w.ship.Location()
	for _, a := range w.aliens {
		if a.IsDead() {
			continue
		}
		a.Transition(agent.NewPathfind(target))
		n++
	}
	return n
}

// Kill flags the alien with id as dead. It stays in the world until the
// reaper runs at the end of the next tick.
func (w *World) Kill(id string) bool {
	for _, a := range w.aliens {
		if a.ID() == id && !a.IsDead() {
			a.Kill()
			return true
		}
	}
	return false
}

// Nearest returns the live alien closest to p.
func (w *World) Nearest(p common.Vec3) (*agent.Alien, bool) {
	var best *agent.Alien
	bestDist := 0.0
	for _, a := range w.aliens {
		if a.IsDead() {
			continue
		}
		if d := a.Location().Distance(p); best == nil || d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best, best != nil
}

// Retune applies new tuning to every live alien and to future spawns.
func (w *World) Retune(t agent.Tuning) {
	w.tuning = t
	for _, a := range w.aliens {
		if a.IsDead() {
			continue
		}
		a.Retune(t)
		w.events.Push(Event{Type: EventRetuned, AlienID: a.ID(), Tick: w.tick})
	}
}

// Observe adds a read-only system that runs at the end of every tick, after
// dead aliens have been removed.
func (w *World) Observe(s System) {
	w.scheduler.Add(PhaseObserve, s)
}

// Obstacles is the live asteroid list. It satisfies agent.ObstacleSource.
func (w *World) Obstacles() []steering.Obstacle { return w.asteroids }

func (w *World) Aliens() []*agent.Alien { return w.aliens }

func (w *World) Ship() *Ship { return w.ship }

func (w *World) Graph() *nav.Graph { return w.graph }

func (w *World) Bounds() body.Bounds { return w.bounds }

func (w *World) Tick() uint64 { return w.tick }

func (w *World) Tuning() agent.Tuning { return w.tuning }

// Events drains the spawn and death events queued since the last call.
func (w *World) Events() []Event { return w.events.Drain() }
