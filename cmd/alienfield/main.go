// Command alienfield is a top-down debug view of the arena.
package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/alienfield/arena"
	"github.com/milk9111/alienfield/config"
	"github.com/milk9111/alienfield/logging"
	"github.com/milk9111/alienfield/prefabs"
)

func main() {
	configDir := flag.String("config", ".", "directory containing alienfield.yaml")
	debug := flag.Bool("debug", false, "draw paths and detection radii")
	flag.Parse()

	settings, err := config.Load(*configDir)
	log := logging.Console(settings.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	world, src := arena.Setup(settings, log)
	set, err := prefabs.LoadSet(src)
	if err != nil {
		log.Warn().Err(err).Msg("prefab colours unavailable; using defaults")
	}

	var watcher *prefabs.Watcher
	if settings.Watch {
		watcher, err = prefabs.NewWatcher(src.WatchDirs()...)
		if err != nil {
			log.Warn().Err(err).Str("dir", src.Dir).Msg("prefab watch disabled")
		} else {
			defer watcher.Close()
		}
	}

	tickRate := settings.Arena.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	ebiten.SetTPS(tickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("alienfield")

	game := NewGame(world, src, watcher, newPalette(set), *debug, log)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
