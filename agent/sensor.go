package agent

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"
)

// DefaultLoseFactor widens the detection radius before a pursuit is dropped.
const DefaultLoseFactor = 1.2

// Reading is what a sensor gets to decide on.
type Reading struct {
	Distance        float64
	DetectionRadius float64
}

// Sensor decides when the player is noticed and when it is lost again.
type Sensor interface {
	Detect(r Reading) bool
	Lose(r Reading) bool
}

// RadiusSensor detects inside the detection radius and loses the player once
// it is LoseFactor times further away.
type RadiusSensor struct {
	LoseFactor float64
}

func DefaultSensor() RadiusSensor {
	return RadiusSensor{LoseFactor: DefaultLoseFactor}
}

func (s RadiusSensor) Detect(r Reading) bool {
	return r.Distance <= r.DetectionRadius
}

func (s RadiusSensor) Lose(r Reading) bool {
	f := s.LoseFactor
	if f < 1 {
		f = 1
	}
	return r.Distance > r.DetectionRadius*f
}

// ScriptSensor evaluates a tengo script that reads the globals distance and
// radius and sets the booleans detect and lose. A failing script falls back
// to Fallback.
type ScriptSensor struct {
	Fallback Sensor

	mu       sync.Mutex
	compiled *tengo.Compiled
	log      zerolog.Logger
}

// NewScriptSensor compiles src once. Errors are compile errors only; run
// time failures are logged and answered by the fallback.
func NewScriptSensor(src []byte, log zerolog.Logger) (*ScriptSensor, error) {
	script := tengo.NewScript(src)
	_ = script.Add("distance", 0.0)
	_ = script.Add("radius", 0.0)
	_ = script.Add("detect", false)
	_ = script.Add("lose", false)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("agent: compile sensor script: %w", err)
	}
	return &ScriptSensor{
		Fallback: DefaultSensor(),
		compiled: compiled,
		log:      log,
	}, nil
}

func (s *ScriptSensor) Detect(r Reading) bool {
	detect, _, err := s.eval(r)
	if err != nil {
		s.log.Warn().Err(err).Msg("sensor script failed; using radius rule")
		return s.fallback().Detect(r)
	}
	return detect
}

func (s *ScriptSensor) Lose(r Reading) bool {
	_, lose, err := s.eval(r)
	if err != nil {
		s.log.Warn().Err(err).Msg("sensor script failed; using radius rule")
		return s.fallback().Lose(r)
	}
	return lose
}

func (s *ScriptSensor) fallback() Sensor {
	if s.Fallback == nil {
		return DefaultSensor()
	}
	return s.Fallback
}

func (s *ScriptSensor) eval(r Reading) (detect, lose bool, err error) {
	if s.compiled == nil {
		return false, false, fmt.Errorf("agent: sensor script not compiled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("distance", r.Distance); err != nil {
		return false, false, err
	}
	if err := s.compiled.Set("radius", r.DetectionRadius); err != nil {
		return false, false, err
	}
	if err := s.compiled.Run(); err != nil {
		return false, false, err
	}
	return s.compiled.Get("detect").Bool(), s.compiled.Get("lose").Bool(), nil
}
