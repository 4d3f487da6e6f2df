package game

import (
	"math/rand"

	"mini-weather/internal/config"
	"mini-weather/internal/profiling"
	"mini-weather/internal/weather"
	"mini-weather/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Session owns one running scene: the static world plus the clock and
// rain that advance every frame.
type Session struct {
	Settings config.Settings
	World    *world.World
	Clock    *weather.Clock
	Rain     *weather.Rain
	Fog      *weather.Fog
	Stars    *weather.Stars
	SunMoon  *weather.SunMoon

	// IncludeBodies copies drop and particle positions into each Frame.
	// Hosts that only need counts can turn it off.
	IncludeBodies bool

	rainEnabled bool
	frames      int
}

// NewSession builds the world and wires the weather around it.
func NewSession(cfg config.Settings) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := world.BuildWorld(WorldConfig(cfg), cfg.Seed)
	if err != nil {
		return nil, err
	}

	// Separate streams so toggling rain never changes the star field.
	starRng := rand.New(rand.NewSource(cfg.Seed + 1))
	rainRng := rand.New(rand.NewSource(cfg.Seed + 2))

	fog := weather.NewFog()
	stars := weather.NewStars(starRng, weather.DefaultStarCount)
	sunMoon := weather.NewSunMoon(fog)
	clock := weather.NewClock(weather.ClockOptions{
		Duration: cfg.Cycle.Duration,
		Fog:      fog,
		Stars:    stars,
		SunMoon:  sunMoon,
	})
	switch cfg.Cycle.Start {
	case "day":
		clock.SetDay()
	case "night":
		clock.SetNight()
	}

	rain := weather.NewRain(weather.RainConfig{
		AreaSize:    cfg.Rain.AreaSize,
		MaxSplashes: cfg.Rain.MaxSplashes,
	}, w.Lakes, rainRng)

	s := &Session{
		Settings:      cfg,
		World:         w,
		Clock:         clock,
		Rain:          rain,
		Fog:           fog,
		Stars:         stars,
		SunMoon:       sunMoon,
		IncludeBodies: true,
	}
	s.SetRainEnabled(cfg.Rain.Enabled)
	return s, nil
}

// WorldConfig extracts the world-build parameters from settings.
func WorldConfig(cfg config.Settings) world.Config {
	return world.Config{
		GroundSize:      cfg.World.GroundSize,
		NumLakes:        cfg.World.NumLakes,
		LakeMinSize:     cfg.World.LakeMinSize,
		LakeMaxSize:     cfg.World.LakeMaxSize,
		NumTrees:        cfg.World.NumTrees,
		MinTreeDistance: cfg.World.MinTreeDistance,
	}
}

// RainEnabled reports whether rain is on.
func (s *Session) RainEnabled() bool { return s.rainEnabled }

// SetRainEnabled switches rain for the whole scene. Turning it off clears
// every drop and particle at once; the sky fades back on its own.
func (s *Session) SetRainEnabled(enabled bool) {
	s.rainEnabled = enabled
	s.Clock.SetRaining(enabled)
	s.Stars.SetRaining(enabled)
	s.SunMoon.SetRaining(enabled)
	if !enabled {
		s.Rain.Clear()
	}
}

// Frames returns how many updates have run.
func (s *Session) Frames() int { return s.frames }

// Update advances the scene by dt seconds as seen from camera.
func (s *Session) Update(dt float64, camera mgl64.Vec3) Frame {
	defer profiling.Track("game.Session.Update")()

	env := s.Clock.Update(dt, camera)
	if s.rainEnabled {
		s.Rain.Update(dt)
	}
	s.frames++

	f := Frame{
		Index:       s.frames,
		RainEnabled: s.rainEnabled,
		Environment: env,
		Counts:      s.Rain.Counts(),
	}
	if s.IncludeBodies {
		f.Drops = s.Rain.Drops()
		f.Particles = s.Rain.Particles()
	}
	return f
}
