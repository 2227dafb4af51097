package arena

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/agent"
	"github.com/milk9111/alienfield/prefabs"
)

// TuningFromSpec converts the alien prefab. Unset fields become defaults
// when the tuning reaches an alien.
func TuningFromSpec(spec prefabs.AlienSpec) agent.Tuning {
	return agent.Tuning{
		DetectionRadius: spec.DetectionRadius,
		NormalSpeed:     spec.NormalSpeed,
		PursuitSpeed:    spec.PursuitSpeed,
		PathfindSpeed:   spec.PathfindSpeed,
		Mass:            spec.Mass,
		MaxForce:        spec.MaxForce,
	}
}

// SensorFromSpec returns the scripted sensor named by the prefab, or the
// radius rule when there is none or it fails to load.
func SensorFromSpec(src prefabs.Source, spec prefabs.AlienSpec, log zerolog.Logger) agent.Sensor {
	fallback := agent.DefaultSensor()
	if spec.LoseFactor > 0 {
		fallback.LoseFactor = spec.LoseFactor
	}
	if spec.SensorScript == "" {
		return fallback
	}

	data, err := src.LoadScript(spec.SensorScript)
	if err != nil {
		log.Warn().Err(err).Str("script", spec.SensorScript).Msg("sensor script missing; using radius rule")
		return fallback
	}
	sensor, err := agent.NewScriptSensor(data, log)
	if err != nil {
		log.Warn().Err(err).Str("script", spec.SensorScript).Msg("sensor script invalid; using radius rule")
		return fallback
	}
	sensor.Fallback = fallback
	return sensor
}
