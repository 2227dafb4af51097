package arena

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/config"
	"github.com/milk9111/alienfield/prefabs"
)

// Setup builds a world from runtime settings. Prefabs that fail to load are
// logged and replaced by the built-in defaults, so a broken prefab never
// stops the arena from starting.
func Setup(s config.Settings, log zerolog.Logger) (*World, prefabs.Source) {
	src := prefabs.Source{Dir: s.PrefabDir}

	set, err := prefabs.LoadSet(src)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.PrefabDir).Msg("prefabs unavailable; using defaults")
		set = prefabs.Set{}
	}
	if s.SensorScript != "" {
		set.Alien.SensorScript = s.SensorScript
	}

	w := New(Config{
		Bounds:    body.Cube(s.Arena.HalfExtent),
		CellSize:  s.Arena.CellSize,
		Aliens:    s.Arena.Aliens,
		Asteroids: s.Arena.Asteroids,
		Seed:      uint64(s.Arena.Seed),
		Prefabs:   set,
		Source:    src,
		Logger:    &log,
	})
	return w, src
}
