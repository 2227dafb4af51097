package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/milk9111/alienfield/arena"
	"github.com/milk9111/alienfield/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	world   *arena.World
	src     prefabs.Source
	watcher *prefabs.Watcher
	palette palette
	log     zerolog.Logger

	debug  bool
	paused bool
	dt     float64
	width  int
	height int
}

func NewGame(world *arena.World, src prefabs.Source, watcher *prefabs.Watcher, pal palette, debug bool, log zerolog.Logger) *Game {
	return &Game{
		world:   world,
		src:     src,
		watcher: watcher,
		palette: pal,
		log:     log,
		debug:   debug,
		dt:      1.0 / float64(ebiten.TPS()),
		width:   baseWidth,
		height:  baseHeight,
	}
}

func (g *Game) Update() error {
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.world.Spawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Recall()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		if a, ok := g.world.Nearest(g.world.Ship().Location()); ok {
			g.world.Kill(a.ID())
		}
	}

	g.world.Ship().Intents = readIntents()
	if g.paused {
		return nil
	}

	g.world.Update(g.dt)
	for _, e := range g.world.Events() {
		g.log.Debug().Str("event", string(e.Type)).Str("alien", e.AlienID).Msg("arena event")
	}
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	if err := g.world.Reload(g.src, changed); err != nil {
		g.log.Warn().Err(err).Strs("files", changed).Msg("prefab reload failed")
	}
}

func readIntents() arena.Intents {
	return arena.Intents{
		Thrust:    ebiten.IsKeyPressed(ebiten.KeyW),
		Brake:     ebiten.IsKeyPressed(ebiten.KeyS),
		YawLeft:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		YawRight:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		PitchUp:   ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		PitchDown: ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Overdrive: ebiten.IsKeyPressed(ebiten.KeyShift),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.background)

	snap := g.world.Snapshot()
	view := newView(snap.Bounds, g.width, g.height)

	drawBounds(screen, view, snap.Bounds, g.palette)
	drawAsteroids(screen, view, snap, g.palette)
	drawAliens(screen, view, snap, g.palette, g.debug, g.world.Tuning().DetectionRadius)
	drawShip(screen, view, snap, g.palette)

	status := fmt.Sprintf("tick %d  fps %.0f  aliens %d  fuel %.0f/%.0f",
		snap.Tick, ebiten.ActualFPS(), len(snap.Aliens), snap.Ship.Fuel, snap.Ship.FuelCapacity)
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
