package game

import (
	"mini-weather/internal/weather"
	"mini-weather/internal/world"
)

// Frame is the per-update snapshot handed to hosts. It holds copies only.
type Frame struct {
	Index       int                 `json:"frame"`
	RainEnabled bool                `json:"rainEnabled"`
	Environment weather.Environment `json:"environment"`
	Counts      weather.RainCounts  `json:"counts"`
	Drops       []weather.Raindrop  `json:"drops,omitempty"`
	Particles   []weather.Particle  `json:"particles,omitempty"`
}

type LakeSummary struct {
	X          float64      `json:"x"`
	Z          float64      `json:"z"`
	Radius     float64      `json:"radius"`
	Size       float64      `json:"size"`
	BestEffort bool         `json:"bestEffort,omitempty"`
	Outline    [][2]float64 `json:"outline,omitempty"`
}

type TreeSummary struct {
	X          float64    `json:"x"`
	Z          float64    `json:"z"`
	Scale      float32    `json:"scale"`
	Tone       int        `json:"tone"`
	Color      [3]float32 `json:"color"`
	BestEffort bool       `json:"bestEffort,omitempty"`
}

// WorldSummary lists the static scene for tools that do not link the world
// package: the build command, the stream handshake and previews.
type WorldSummary struct {
	Seed          int64         `json:"seed"`
	GroundSize    float64       `json:"groundSize"`
	Lakes         []LakeSummary `json:"lakes"`
	Trees         []TreeSummary `json:"trees"`
	LakeFallbacks int           `json:"lakeFallbacks"`
	TreeFallbacks int           `json:"treeFallbacks"`
}

// Summarize flattens w. Outlines are large, so they are opt-in.
func Summarize(w *world.World, outlines bool) WorldSummary {
	sum := WorldSummary{
		Seed:          w.Seed,
		GroundSize:    w.GroundSize,
		LakeFallbacks: w.Lakes.Fallbacks(),
		TreeFallbacks: w.Forest.Fallbacks(),
	}

	for _, l := range w.Lakes.Lakes() {
		ls := LakeSummary{
			X:          l.X,
			Z:          l.Z,
			Radius:     l.Radius,
			Size:       l.Shape.Size,
			BestEffort: l.BestEffort,
		}
		if outlines {
			for _, p := range l.Outline() {
				ls.Outline = append(ls.Outline, [2]float64{p.X(), p.Y()})
			}
		}
		sum.Lakes = append(sum.Lakes, ls)
	}

	for _, t := range w.Forest.Trees() {
		sum.Trees = append(sum.Trees, TreeSummary{
			X:          t.X,
			Z:          t.Z,
			Scale:      t.Scale,
			Tone:       t.Tone,
			Color:      t.Color(),
			BestEffort: t.BestEffort,
		})
	}
	return sum
}
