package tui

import (
	"mini-weather/internal/game"
	"mini-weather/internal/weather"
	"mini-weather/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	runeGround = ' '
	runeTree   = '♣'
	runeDrop   = '|'
	runeSplash = '*'
	runeEjecta = '.'
	runeRipple = 'o'
)

var (
	groundTint = mgl32.Vec3{0.30, 0.55, 0.25}
	waterTint  = mgl32.Vec3{0.20, 0.45, 0.75}
	dropTint   = mgl32.Vec3{0.75, 0.80, 0.90}
	foamTint   = mgl32.Vec3{0.95, 0.95, 1.00}
)

// Cell is one terminal character with its colours.
type Cell struct {
	Rune rune
	Fg   mgl32.Vec3
	Bg   mgl32.Vec3
}

// Grid is the composed scene, row-major.
type Grid struct {
	Width, Height int
	Cells         []Cell
}

func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.Width+x]
}

// cellOf maps a world X/Z position to a cell, screen up is -Z.
func (g *Grid) cellOf(ground, x, z float64) (int, int, bool) {
	half := ground / 2
	cx := int((x + half) / ground * float64(g.Width))
	cy := int((z + half) / ground * float64(g.Height))
	if cx < 0 || cy < 0 || cx >= g.Width || cy >= g.Height {
		return 0, 0, false
	}
	return cx, cy, true
}

// Compose lays the whole ground onto a width x height grid. Later layers
// overwrite earlier ones: terrain, trees, drops, impacts.
func Compose(w *world.World, f game.Frame, width, height int) Grid {
	g := Grid{Width: width, Height: height, Cells: make([]Cell, width*height)}
	if width <= 0 || height <= 0 {
		return g
	}

	light := float32(f.Environment.Light())
	ground := w.GroundSize
	for cy := range height {
		z := (float64(cy)+0.5)/float64(height)*ground - ground/2
		for cx := range width {
			x := (float64(cx)+0.5)/float64(width)*ground - ground/2
			bg := groundTint
			if w.IsInsideLake(x, z) {
				bg = waterTint
			}
			*g.At(cx, cy) = Cell{Rune: runeGround, Bg: bg.Mul(light)}
		}
	}

	for _, t := range w.Forest.Trees() {
		if cx, cy, ok := g.cellOf(ground, t.X, t.Z); ok {
			c := g.At(cx, cy)
			c.Rune, c.Fg = runeTree, t.Color().Mul(light)
		}
	}

	for _, d := range f.Drops {
		if cx, cy, ok := g.cellOf(ground, d.Pos.X(), d.Pos.Z()); ok {
			c := g.At(cx, cy)
			c.Rune, c.Fg = runeDrop, dropTint
		}
	}

	for _, p := range f.Particles {
		cx, cy, ok := g.cellOf(ground, p.Pos.X(), p.Pos.Z())
		if !ok {
			continue
		}
		c := g.At(cx, cy)
		switch p.Kind {
		case weather.KindSplash:
			c.Rune = runeSplash
		case weather.KindEjecta:
			c.Rune = runeEjecta
		case weather.KindRipple:
			c.Rune = runeRipple
		}
		// fade toward the background as the particle ages
		c.Fg = c.Bg.Add(foamTint.Sub(c.Bg).Mul(float32(p.Opacity) * 2))
	}
	return g
}
