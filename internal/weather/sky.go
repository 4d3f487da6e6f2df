package weather

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sky palette.
var (
	SkyNight = hexColor(0x0a0a30)
	SkyDawn  = hexColor(0xffb347)
	SkyDay   = hexColor(0x87ceeb)
	SkyDusk  = hexColor(0xc06030)

	RainSkyDay   = hexColor(0xa0a0a0)
	RainSkyNight = hexColor(0x222233)
)

// Sun angles, in radians, where the sky palette changes.
const (
	DawnStart = math.Pi * 0.1
	DawnEnd   = math.Pi * 0.5
	DayEnd    = math.Pi * 0.7
	DuskStart = math.Pi * 0.7
	DuskMid   = math.Pi * 0.8
	DuskEnd   = math.Pi * 1.0
)

// rainBlendFloor is the blend below which rain leaves the sky untouched.
const rainBlendFloor = 0.001

type skyBand struct {
	from, to float64
	a, b     mgl32.Vec3
}

// Bands are checked in order; the first whose upper bound exceeds the
// angle wins. Angles past DuskEnd are plain night.
var skyBands = []skyBand{
	{0, DawnStart, SkyNight, SkyDawn},
	{DawnStart, DawnEnd, SkyDawn, SkyDay},
	{DawnEnd, DayEnd, SkyDay, SkyDay},
	{DayEnd, DuskStart, SkyDay, SkyDay},
	{DuskStart, DuskMid, SkyDay, SkyDusk},
	{DuskMid, DuskEnd, SkyDusk, SkyNight},
}

// BaseSkyColor returns the time-of-day sky colour for sunAngle in [0, 2π).
func BaseSkyColor(sunAngle float64) mgl32.Vec3 {
	for _, band := range skyBands {
		if sunAngle < band.to {
			if band.a == band.b {
				return band.a
			}
			return lerpColor(band.a, band.b, (sunAngle-band.from)/(band.to-band.from))
		}
	}
	return SkyNight
}

// SkyColor blends the time-of-day colour toward an overcast tone by
// rainBlend. The overcast tone itself follows daylight.
func SkyColor(sunAngle, rainBlend float64) mgl32.Vec3 {
	sky := BaseSkyColor(sunAngle)
	if rainBlend > rainBlendFloor {
		dayFactor := math.Max(0, math.Sin(sunAngle))
		rain := lerpColor(RainSkyNight, RainSkyDay, dayFactor)
		sky = lerpColor(sky, rain, rainBlend)
	}
	return sky
}
