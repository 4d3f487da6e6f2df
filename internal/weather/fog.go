package weather

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FogState is the exponential fog the host applies this frame.
type FogState struct {
	Density float64    `json:"density"`
	Color   mgl32.Vec3 `json:"color"`
}

// Fog interpolates between night and day fog by sun height.
type Fog struct {
	DayDensity   float64
	NightDensity float64
	DayColor     mgl32.Vec3
	NightColor   mgl32.Vec3
}

// NewFog returns fog with the default day and night settings.
func NewFog() *Fog {
	return &Fog{
		DayDensity:   0.005,
		NightDensity: 0.010,
		DayColor:     hexColor(0xc0d8ff),
		NightColor:   hexColor(0x0a0a30),
	}
}

// Update derives the fog for sunAngle. Denser and darker at night.
func (f *Fog) Update(sunAngle float64) FogState {
	dayFactor := math.Max(0, math.Sin(sunAngle))
	return FogState{
		Density: f.NightDensity + (f.DayDensity-f.NightDensity)*dayFactor,
		Color:   lerpColor(f.NightColor, f.DayColor, dayFactor),
	}
}
