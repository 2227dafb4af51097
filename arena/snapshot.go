package arena

import (
	"github.com/milk9111/alienfield/agent"
	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/steering"
)

type AlienView struct {
	ID          string
	State       string
	Location    common.Vec3
	Orientation body.Orientation
	Dead        bool
	Goal        common.Vec3
	HasGoal     bool
	Path        []common.Vec3
}

type ShipView struct {
	Location     common.Vec3
	Velocity     common.Vec3
	Orientation  body.Orientation
	Fuel         float64
	FuelCapacity float64
	Overdrive    bool
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick        uint64
	Bounds      body.Bounds
	Ship        ShipView
	Aliens      []AlienView
	Asteroids   []steering.Sphere
	StateCounts map[string]int
}

func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        w.tick,
		Bounds:      w.bounds,
		Aliens:      make([]AlienView, 0, len(w.aliens)),
		Asteroids:   make([]steering.Sphere, 0, len(w.asteroids)),
		StateCounts: make(map[string]int),
	}

	if w.ship != nil {
		snap.Ship = ShipView{
			Location:     w.ship.Location(),
			Velocity:     w.ship.Velocity(),
			Orientation:  w.ship.Orientation(),
			Fuel:         w.ship.Fuel,
			FuelCapacity: w.ship.FuelCapacity(),
			Overdrive:    w.ship.Overdriven(),
		}
	}

	for _, a := range w.aliens {
		view := AlienView{
			ID:          a.ID(),
			State:       a.StateName(),
			Location:    a.Location(),
			Orientation: a.Orientation(),
			Dead:        a.IsDead(),
		}
		view.Goal, view.HasGoal = a.Goal()
		if pf, ok := a.State().(*agent.PathfindState); ok {
			view.Path = append([]common.Vec3(nil), pf.Remaining()...)
		}
		snap.Aliens = append(snap.Aliens, view)
		if !view.Dead {
			snap.StateCounts[view.State]++
		}
	}

	for _, o := range w.asteroids {
		snap.Asteroids = append(snap.Asteroids, steering.Sphere{Center: o.Position(), R: o.Radius()})
	}
	return snap
}
