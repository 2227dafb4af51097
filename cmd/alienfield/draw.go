package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/alienfield/agent"
	"github.com/milk9111/alienfield/arena"
	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
	"github.com/milk9111/alienfield/prefabs"
)

const viewMargin = 20.0

type palette struct {
	background color.Color
	bounds     color.Color
	asteroid   color.Color
	ship       color.Color
	path       color.Color
	states     map[string]color.Color
	dead       color.Color
}

func newPalette(set prefabs.Set) palette {
	p := palette{
		background: colornames.Black,
		bounds:     colornames.Dimgray,
		asteroid:   set.Asteroids.Color.Or(colornames.Rosybrown),
		ship:       set.Ship.Color.Or(colornames.White),
		path:       colornames.Steelblue,
		dead:       set.Alien.Colors["dead"].Or(colornames.Gray),
		states: map[string]color.Color{
			agent.StateWander:   set.Alien.Colors[agent.StateWander].Or(colornames.Yellowgreen),
			agent.StatePursue:   set.Alien.Colors[agent.StatePursue].Or(colornames.Crimson),
			agent.StatePathfind: set.Alien.Colors[agent.StatePathfind].Or(colornames.Dodgerblue),
		},
	}
	return p
}

func (p palette) alien(state string, dead bool) color.Color {
	if dead {
		return p.dead
	}
	if c, ok := p.states[state]; ok {
		return c
	}
	return colornames.White
}

// view maps the arena's XZ plane onto the screen, looking down -Y.
type view struct {
	origin cp.Vector
	min    cp.Vector
	scale  float64
}

func newView(bounds body.Bounds, width, height int) view {
	span := bounds.Span()
	sx := (float64(width) - 2*viewMargin) / math.Max(span.X, 1)
	sz := (float64(height) - 2*viewMargin) / math.Max(span.Z, 1)
	return view{
		origin: cp.Vector{X: viewMargin, Y: viewMargin},
		min:    cp.Vector{X: bounds.Min.X, Y: bounds.Min.Z},
		scale:  math.Min(sx, sz),
	}
}

func (v view) project(p common.Vec3) (float32, float32) {
	s := cp.Vector{X: p.X, Y: p.Z}.Sub(v.min).Mult(v.scale).Add(v.origin)
	return float32(s.X), float32(s.Y)
}

func (v view) length(l float64) float32 {
	return float32(l * v.scale)
}

func drawBounds(screen *ebiten.Image, v view, bounds body.Bounds, pal palette) {
	x0, y0 := v.project(bounds.Min)
	x1, y1 := v.project(bounds.Max)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, pal.bounds, false)
}

func drawAsteroids(screen *ebiten.Image, v view, snap arena.Snapshot, pal palette) {
	for _, a := range snap.Asteroids {
		x, y := v.project(a.Center)
		vector.StrokeCircle(screen, x, y, v.length(a.R), 1, pal.asteroid, true)
	}
}

func drawAliens(screen *ebiten.Image, v view, snap arena.Snapshot, pal palette, debug bool, detection float64) {
	for _, a := range snap.Aliens {
		x, y := v.project(a.Location)
		c := pal.alien(a.State, a.Dead)

		if debug && !a.Dead {
			vector.StrokeCircle(screen, x, y, v.length(detection), 1, c, true)
			prevX, prevY := x, y
			for _, wp := range a.Path {
				wx, wy := v.project(wp)
				vector.StrokeLine(screen, prevX, prevY, wx, wy, 1, pal.path, true)
				prevX, prevY = wx, wy
			}
		}

		vector.DrawFilledCircle(screen, x, y, 4, c, true)
		drawHeading(screen, x, y, a.Orientation, 10, c)
	}
}

func drawShip(screen *ebiten.Image, v view, snap arena.Snapshot, pal palette) {
	x, y := v.project(snap.Ship.Location)
	c := pal.ship
	if snap.Ship.Overdrive {
		c = colornames.Orange
	}
	vector.StrokeCircle(screen, x, y, 6, 2, c, true)
	drawHeading(screen, x, y, snap.Ship.Orientation, 14, c)
}

func drawHeading(screen *ebiten.Image, x, y float32, o body.Orientation, length float64, c color.Color) {
	f := o.Forward()
	tip := cp.Vector{X: f.X, Y: f.Z}.Normalize().Mult(length)
	vector.StrokeLine(screen, x, y, x+float32(tip.X), y+float32(tip.Y), 2, c, true)
}
