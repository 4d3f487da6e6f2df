package weather

import (
	"math"

	"mini-weather/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultCycleDuration is one full day in seconds.
	DefaultCycleDuration = 60.0
	// RainBlendTarget is how far rain pulls the sky toward overcast.
	RainBlendTarget = 0.7
	// RainBlendSpeed is the relaxation rate of the rain blend per second.
	RainBlendSpeed = 2.5

	ambientBase  = 0.1
	ambientRange = 0.4
)

// Environment is everything the host needs to light and tint a frame.
type Environment struct {
	Time             float64      `json:"time"`
	Phase            float64      `json:"phase"`
	SunAngle         float64      `json:"sunAngle"`
	IsDay            bool         `json:"isDay"`
	RainBlend        float64      `json:"rainBlend"`
	AmbientIntensity float64      `json:"ambientIntensity"`
	SkyColor         mgl32.Vec3   `json:"skyColor"`
	Fog              FogState     `json:"fog"`
	Stars            StarState    `json:"stars"`
	SunMoon          SunMoonState `json:"sunMoon"`
}

// ClockOptions wires the effects a clock drives. Nil effects are skipped.
type ClockOptions struct {
	Duration float64
	Fog      *Fog
	Stars    *Stars
	SunMoon  *SunMoon
}

// Clock advances the day-night cycle and derives every time-of-day value
// from a single sun angle.
type Clock struct {
	Duration float64

	time            float64
	rainBlend       float64
	targetRainBlend float64

	fog     *Fog
	stars   *Stars
	sunMoon *SunMoon

	env Environment
}

// NewClock creates a clock at time zero, dry.
func NewClock(opts ClockOptions) *Clock {
	d := opts.Duration
	if d <= 0 {
		d = DefaultCycleDuration
	}
	return &Clock{
		Duration: d,
		fog:      opts.Fog,
		stars:    opts.Stars,
		sunMoon:  opts.SunMoon,
	}
}

// Time returns the accumulated cycle time in seconds.
func (c *Clock) Time() float64 { return c.time }

// Phase returns the position within the cycle in [0, 1).
func (c *Clock) Phase() float64 {
	return math.Mod(c.time, c.Duration) / c.Duration
}

// SunAngle returns Phase mapped to [0, 2π).
func (c *Clock) SunAngle() float64 {
	return c.Phase() * 2 * math.Pi
}

// IsDay reports whether the sun is above the horizon. sin == 0 is night.
func (c *Clock) IsDay() bool {
	return math.Sin(c.SunAngle()) > 0
}

// IsNight is the complement of IsDay.
func (c *Clock) IsNight() bool {
	return math.Sin(c.SunAngle()) <= 0
}

// SetDay jumps to noon.
func (c *Clock) SetDay() {
	c.time = c.Duration * 0.25
}

// SetNight jumps to midnight.
func (c *Clock) SetNight() {
	c.time = c.Duration * 0.75
}

// SetRaining retargets the rain blend. The blend itself moves in Update.
func (c *Clock) SetRaining(raining bool) {
	if raining {
		c.targetRainBlend = RainBlendTarget
	} else {
		c.targetRainBlend = 0
	}
}

// RainBlend returns the current smoothed rain blend.
func (c *Clock) RainBlend() float64 { return c.rainBlend }

// Environment returns the values derived by the last Update.
func (c *Clock) Environment() Environment { return c.env }

// Update advances time by dt and recomputes the environment. camera is the
// viewer position the sun and moon discs are placed around.
func (c *Clock) Update(dt float64, camera mgl64.Vec3) Environment {
	defer profiling.Track("weather.Clock.Update")()

	c.time += dt
	sunAngle := c.SunAngle()

	// First-order low-pass toward the target; never snaps.
	c.rainBlend += (c.targetRainBlend - c.rainBlend) * math.Min(1, RainBlendSpeed*dt)

	env := Environment{
		Time:      c.time,
		Phase:     c.Phase(),
		SunAngle:  sunAngle,
		IsDay:     c.IsDay(),
		RainBlend: c.rainBlend,
	}

	if c.fog != nil {
		env.Fog = c.fog.Update(sunAngle)
	}
	if c.sunMoon != nil {
		env.SunMoon = c.sunMoon.Update(sunAngle, camera, env.Fog.Density)
	}

	env.AmbientIntensity = AmbientIntensity(sunAngle)
	env.SkyColor = SkyColor(sunAngle, c.rainBlend)

	if c.stars != nil {
		env.Stars = c.stars.Update(math.Max(0, -math.Sin(sunAngle)))
	}

	c.env = env
	return env
}

// AmbientIntensity is the fill light for sunAngle: a night baseline plus a
// share of the sun's height.
func AmbientIntensity(sunAngle float64) float64 {
	sunY := SunHeight(sunAngle, OrbitDistance)
	if sunY > 0 {
		return ambientBase + ambientRange*math.Max(0, sunY/OrbitDistance)
	}
	return ambientBase
}

// Light folds ambient, sun and moon into one brightness in [0, 1] for
// hosts that shade flat colours instead of running a lighting model.
// Rain dims the direct share by the current blend.
func (e Environment) Light() float64 {
	direct := e.SunMoon.SunIntensity*e.SunMoon.SunOpacity + e.SunMoon.MoonLightIntensity
	return clamp01(e.AmbientIntensity + direct*(1-e.RainBlend)*0.6)
}
