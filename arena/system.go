package arena

// System is one stage of the arena tick.
type System interface {
	Update(w *World, dt float64)
}

// Phase orders systems within one tick. Systems in the same phase run in
// the order they were added.
type Phase int

const (
	PhaseShip Phase = iota
	PhaseAgents
	PhaseReap
	// PhaseObserve runs after dead aliens are gone, for reporting and debug
	// systems that only read the world.
	PhaseObserve

	phaseCount
)

type Scheduler struct {
	phases [phaseCount][]System
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add appends system to phase. Unknown phases and nil systems are ignored.
func (s *Scheduler) Add(phase Phase, system System) {
	if system == nil || phase < 0 || phase >= phaseCount {
		return
	}
	s.phases[phase] = append(s.phases[phase], system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, systems := range s.phases {
		for _, system := range systems {
			system.Update(w, dt)
		}
	}
}

// Systems lists every system in run order.
func (s *Scheduler) Systems() []System {
	var out []System
	for _, systems := range s.phases {
		out = append(out, systems...)
	}
	return out
}

// ShipSystem moves the player ship from its current intents.
type ShipSystem struct{}

func (ShipSystem) Update(w *World, dt float64) {
	if w.ship == nil {
		return
	}
	w.ship.Update(dt, w.bounds)
}

// AgentSystem runs every live alien. Aliens never leave the slice here;
// removal waits for the reaper.
type AgentSystem struct{}

func (AgentSystem) Update(w *World, dt float64) {
	for _, a := range w.aliens {
		if a.IsDead() {
			continue
		}
		a.Update(dt, w.bounds)
	}
}

// ReaperSystem drops dead aliens after the update pass.
type ReaperSystem struct{}

func (ReaperSystem) Update(w *World, dt float64) {
	live := w.aliens[:0]
	for _, a := range w.aliens {
		if a.IsDead() {
			w.events.Push(Event{Type: EventDied, AlienID: a.ID(), Tick: w.tick})
			w.log.Debug().Str("alien", a.ID()).Msg("reaped")
			continue
		}
		live = append(live, a)
	}
	for i := len(live); i < len(w.aliens); i++ {
		w.aliens[i] = nil
	}
	w.aliens = live
}
