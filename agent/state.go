package agent

import (
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/steering"
)

// State is one behaviour of the alien state machine. Enter runs once when
// the alien switches to the state; Update runs every tick after that and
// applies steering forces to the alien's body.
type State interface {
	Name() string
	Enter(a *Alien)
	Update(a *Alien, dt float64)
}

const (
	StateWander   = "wander"
	StatePursue   = "pursue"
	StatePathfind = "pathfind"
)

// Wander and Pursue carry no per-alien data and are shared.
var (
	Wander State = wanderState{}
	Pursue State = pursueState{}
)

type wanderState struct{}

func (wanderState) Name() string { return StateWander }

func (wanderState) Enter(a *Alien) {
	a.clearGoal()
	a.b.TopSpeed = a.tuning.NormalSpeed
}

func (wanderState) Update(a *Alien, dt float64) {
	if r, ok := a.playerReading(); ok && a.sensor.Detect(r) {
		a.Transition(Pursue)
		return
	}

	a.b.ApplyForce(a.wanderer.Steer(a.kinematics(), a.rng))
	a.avoid()
}

type pursueState struct{}

func (pursueState) Name() string { return StatePursue }

func (pursueState) Enter(a *Alien) {
	a.b.TopSpeed = a.tuning.PursuitSpeed
}

func (pursueState) Update(a *Alien, dt float64) {
	r, ok := a.playerReading()
	if !ok || a.sensor.Lose(r) {
		a.Transition(Wander)
		return
	}

	a.setGoal(a.player.Location())
	a.b.ApplyForce(steering.Pursue(a.kinematics(), a.player.Location(), a.player.Velocity(), PursueLookAhead))
	a.avoid()
}

// PathfindState follows a graph path toward a fixed point, then falls back
// to wandering. Each instance owns its path, so make a new one per request.
type PathfindState struct {
	Target common.Vec3

	path  []common.Vec3
	index int
}

func NewPathfind(target common.Vec3) *PathfindState {
	return &PathfindState{Target: target}
}

func (*PathfindState) Name() string { return StatePathfind }

func (s *PathfindState) Enter(a *Alien) {
	a.b.TopSpeed = a.tuning.PathfindSpeed
	s.path = nil
	s.index = 0

	if a.graph == nil {
		a.log.Debug().Msg("pathfind: no graph")
		s.giveUp(a)
		return
	}

	s.path = a.graph.FindPath(a.b.Location, s.Target)
	if len(s.path) == 0 {
		a.log.Debug().Stringer("target", s.Target).Msg("pathfind: no path")
		s.giveUp(a)
	}
}

func (s *PathfindState) Update(a *Alien, dt float64) {
	if s.index >= len(s.path) || !s.path[s.index].IsFinite() {
		s.giveUp(a)
		return
	}

	waypoint := s.path[s.index]
	a.setGoal(waypoint)
	a.b.ApplyForce(steering.Seek(a.kinematics(), waypoint))
	if a.b.Location.Distance(waypoint) < WaypointReached {
		s.index++
	}
	a.avoid()
}

// Remaining returns the waypoints not yet reached.
func (s *PathfindState) Remaining() []common.Vec3 {
	if s.index >= len(s.path) {
		return nil
	}
	return s.path[s.index:]
}

func (s *PathfindState) giveUp(a *Alien) {
	s.path = nil
	s.index = 0
	a.b.TopSpeed = a.tuning.NormalSpeed
	a.Transition(Wander)
}
