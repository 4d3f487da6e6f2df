package weather

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitDistance is how far the sun and moon sit from the viewer.
const OrbitDistance = 500.0

const horizonY = 0.0

// SunMoonState positions the sun and moon discs and sets their lights.
// Disc positions are relative to the camera so they never get closer.
type SunMoonState struct {
	SunPosition      mgl64.Vec3 `json:"sunPosition"`
	SunLightPosition mgl64.Vec3 `json:"sunLightPosition"`
	SunVisible       bool       `json:"sunVisible"`
	SunOpacity       float64    `json:"sunOpacity"`
	SunIntensity     float64    `json:"sunIntensity"`

	MoonPosition       mgl64.Vec3 `json:"moonPosition"`
	MoonVisible        bool       `json:"moonVisible"`
	MoonLightIntensity float64    `json:"moonLightIntensity"`
}

// SunMoon moves the sun and the moon on opposite points of one orbit.
type SunMoon struct {
	Distance float64
	// Fog densities at which the sun is fully clear and fully hidden.
	ClearFog  float64
	HiddenFog float64

	raining bool
}

// NewSunMoon matches the fade range to the default fog.
func NewSunMoon(fog *Fog) *SunMoon {
	sm := &SunMoon{Distance: OrbitDistance, ClearFog: 0.005, HiddenFog: 0.010}
	if fog != nil {
		sm.ClearFog, sm.HiddenFog = fog.DayDensity, fog.NightDensity
	}
	return sm
}

// SetRaining hides both discs while rain is on.
func (sm *SunMoon) SetRaining(raining bool) {
	sm.raining = raining
}

// orbit returns the point for angle on the tilted orbit, before camera offset.
func (sm *SunMoon) orbit(angle float64) mgl64.Vec3 {
	d := sm.Distance
	return mgl64.Vec3{
		math.Cos(angle) * d * 0.7,
		math.Sin(angle)*d*0.5 + d*0.25,
		-d,
	}
}

// SunHeight returns the sun's height above the horizon plane.
func SunHeight(sunAngle, distance float64) float64 {
	return math.Sin(sunAngle)*distance*0.5 + distance*0.25
}

// Update places both bodies for sunAngle around camera and fades the sun
// with fogDensity.
func (sm *SunMoon) Update(sunAngle float64, camera mgl64.Vec3, fogDensity float64) SunMoonState {
	var st SunMoonState

	st.SunOpacity = 1
	if span := sm.HiddenFog - sm.ClearFog; span != 0 {
		st.SunOpacity = clamp01(1 - (fogDensity-sm.ClearFog)/span)
	}

	sun := sm.orbit(sunAngle)
	st.SunPosition = camera.Add(sun)
	st.SunLightPosition = sun
	st.SunVisible = sun.Y() > horizonY && !sm.raining
	if sun.Y() > horizonY {
		st.SunIntensity = 0.2 + 0.8*math.Max(0, sun.Y()/sm.Distance)
	}

	moon := sm.orbit(sunAngle + math.Pi)
	st.MoonPosition = camera.Add(moon)
	st.MoonVisible = moon.Y() > horizonY && math.Sin(sunAngle) < 0 && !sm.raining
	st.MoonLightIntensity = 0.2 * math.Max(0, -math.Sin(sunAngle))
	return st
}
