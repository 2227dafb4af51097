// Command navsim runs the arena headless at a fixed tick and logs what the
// aliens are doing.
package main

import (
	"flag"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/arena"
	"github.com/milk9111/alienfield/config"
	"github.com/milk9111/alienfield/logging"
	"github.com/milk9111/alienfield/prefabs"
)

func main() {
	configDir := flag.String("config", ".", "directory containing alienfield.yaml")
	ticks := flag.Int("ticks", 3600, "number of ticks to simulate")
	report := flag.Int("report", 60, "log state counts every n ticks (0 disables)")
	recall := flag.Int("recall", 0, "send every alien back to the ship every n ticks (0 disables)")
	jsonLogs := flag.Bool("json", false, "log JSON instead of console output")
	flag.Parse()

	settings, err := config.Load(*configDir)
	log := newLogger(settings.LogLevel, *jsonLogs)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	world, src := arena.Setup(settings, log)

	var watcher *prefabs.Watcher
	if settings.Watch {
		watcher, err = prefabs.NewWatcher(src.WatchDirs()...)
		if err != nil {
			log.Warn().Err(err).Str("dir", src.Dir).Msg("prefab watch disabled")
		} else {
			defer watcher.Close()
		}
	}

	if *report > 0 {
		world.Observe(stateReporter{log: log, every: uint64(*report)})
	}

	tickRate := settings.Arena.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1.0 / float64(tickRate)

	for i := 1; i <= *ticks; i++ {
		if watcher != nil {
			if changed := watcher.Drain(); len(changed) > 0 {
				if err := world.Reload(src, changed); err != nil {
					log.Warn().Err(err).Strs("files", changed).Msg("prefab reload failed")
				}
			}
		}
		if *recall > 0 && i%*recall == 0 {
			log.Info().Int("aliens", world.Recall()).Msg("recall")
		}

		world.Update(dt)

		for _, e := range world.Events() {
			log.Debug().Str("event", string(e.Type)).Str("alien", e.AlienID).Uint64("tick", e.Tick).Msg("arena event")
		}
	}

	logStates(log, world.Snapshot())
}

func newLogger(level string, json bool) zerolog.Logger {
	if json {
		return logging.New(os.Stdout, level)
	}
	return logging.Console(level)
}

// stateReporter logs state counts every n ticks.
type stateReporter struct {
	log   zerolog.Logger
	every uint64
}

func (r stateReporter) Update(w *arena.World, dt float64) {
	if r.every == 0 || w.Tick()%r.every != 0 {
		return
	}
	logStates(r.log, w.Snapshot())
}

func logStates(log zerolog.Logger, snap arena.Snapshot) {
	states := make([]string, 0, len(snap.StateCounts))
	for s := range snap.StateCounts {
		states = append(states, s)
	}
	sort.Strings(states)

	ev := log.Info().Uint64("tick", snap.Tick).Int("aliens", len(snap.Aliens))
	for _, s := range states {
		ev = ev.Int(s, snap.StateCounts[s])
	}
	ev.Float64("fuel", snap.Ship.Fuel).Msg("arena")
}
