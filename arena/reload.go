package arena

import (
	"path/filepath"
	"strings"

	"github.com/milk9111/alienfield/prefabs"
)

// Reload re-reads the prefabs named in changed (base names as reported by
// prefabs.Watcher). A changed alien.yaml retunes every live alien and
// rebuilds the sensor; a changed script only rebuilds the sensor. Other
// names are ignored. On error the current tuning is kept.
func (w *World) Reload(src prefabs.Source, changed []string) error {
	var alien, script bool
	for _, name := range changed {
		base := filepath.Base(name)
		switch {
		case base == prefabs.AlienFile:
			alien = true
		case strings.EqualFold(filepath.Ext(base), ".tengo"):
			script = true
		}
	}
	if !alien && !script {
		return nil
	}

	spec, err := prefabs.LoadSpecFrom[prefabs.AlienSpec](src, prefabs.AlienFile)
	if err != nil {
		return err
	}

	if alien {
		w.Retune(TuningFromSpec(spec))
		w.log.Info().Interface("tuning", w.tuning).Msg("alien tuning reloaded")
	}

	w.sensor = SensorFromSpec(src, spec, w.log)
	for _, a := range w.aliens {
		a.SetSensor(w.sensor)
	}
	return nil
}
