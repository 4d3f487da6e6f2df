package weather

import (
	"math"
	"math/rand"

	"mini-weather/internal/profiling"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultRainArea is the side of the square drops spawn over.
	DefaultRainArea = 200.0
	// DefaultMaxSplashes caps concurrently live large splashes.
	DefaultMaxSplashes = 500

	// FallSpeed is how fast drops descend, units per second.
	FallSpeed = 90.0

	spawnHeightMin   = 50.0
	spawnHeightRange = 100.0

	// The first drop waits initialSpawnInterval; every later interval is
	// redrawn from [spawnIntervalMin, spawnIntervalMin+spawnIntervalRange).
	initialSpawnInterval = 2.0
	spawnIntervalMin     = 0.0001
	spawnIntervalRange   = 0.0005

	ejectaMin      = 2
	ejectaRange    = 4 // 2..5 inclusive
	ejectaDistMin  = 1.0
	ejectaDistSpan = 2.0
)

// LakeQuery answers whether an impact point is on water.
type LakeQuery interface {
	IsInside(x, z float64) bool
}

// Raindrop is a falling drop. Yaw and tilt only affect how it is drawn.
type Raindrop struct {
	Pos   mgl64.Vec3 `json:"pos"`
	Yaw   float64    `json:"yaw"`
	TiltX float64    `json:"tiltX"`
	TiltZ float64    `json:"tiltZ"`
}

// RainCounts summarises the live particle populations.
type RainCounts struct {
	Drops    int `json:"drops"`
	Splashes int `json:"splashes"`
	Ejecta   int `json:"ejecta"`
	Ripples  int `json:"ripples"`
}

// RainConfig sizes the rain area and the splash budget.
type RainConfig struct {
	AreaSize    float64
	MaxSplashes int
}

// Rain owns every raindrop and impact particle. Nothing outside holds
// references into its slices; readers get copies.
type Rain struct {
	cfg   RainConfig
	rng   *rand.Rand
	lakes LakeQuery

	drops     []Raindrop
	particles []Particle
	splashes  int

	spawnTimer    float64
	spawnInterval float64
}

// NewRain creates an empty simulator. lakes may be nil for a dry world.
func NewRain(cfg RainConfig, lakes LakeQuery, rng *rand.Rand) *Rain {
	if cfg.AreaSize <= 0 {
		cfg.AreaSize = DefaultRainArea
	}
	if cfg.MaxSplashes <= 0 {
		cfg.MaxSplashes = DefaultMaxSplashes
	}
	return &Rain{
		cfg:           cfg,
		rng:           rng,
		lakes:         lakes,
		spawnInterval: initialSpawnInterval,
	}
}

// Update runs one frame: spawn, fall, impact, decay.
func (r *Rain) Update(dt float64) {
	defer profiling.Track("weather.Rain.Update")()

	r.spawn(dt)
	r.fall(dt)
	r.decay(dt)
}

// spawn releases drops while the timer covers the current interval. The
// interval is redrawn after every drop, so a single frame releases a burst.
func (r *Rain) spawn(dt float64) {
	r.spawnTimer += dt
	for r.spawnTimer > r.spawnInterval {
		r.spawnTimer -= r.spawnInterval
		r.spawnInterval = spawnIntervalMin + r.rng.Float64()*spawnIntervalRange

		x := (r.rng.Float64() - 0.5) * r.cfg.AreaSize
		y := r.rng.Float64()*spawnHeightRange + spawnHeightMin
		z := (r.rng.Float64() - 0.5) * r.cfg.AreaSize
		r.drops = append(r.drops, Raindrop{
			Pos:   mgl64.Vec3{x, y, z},
			Yaw:   r.rng.Float64() * math.Pi * 2,
			TiltX: (r.rng.Float64() - 0.5) * 0.2,
			TiltZ: (r.rng.Float64() - 0.5) * 0.2,
		})
	}
}

func (r *Rain) fall(dt float64) {
	live := 0
	for _, d := range r.drops {
		d.Pos[1] -= dt * FallSpeed
		if d.Pos.Y() < 0 {
			r.impact(d.Pos.X(), d.Pos.Z())
			continue
		}
		r.drops[live] = d
		live++
	}
	r.drops = r.drops[:live]
}

// impact turns a landed drop into a ripple on water or a splash with
// ejecta on ground. Splashes over budget are dropped silently.
func (r *Rain) impact(x, z float64) {
	if r.lakes != nil && r.lakes.IsInside(x, z) {
		r.particles = append(r.particles, newParticle(KindRipple, x, z, 1))
		return
	}
	if r.splashes >= r.cfg.MaxSplashes {
		return
	}
	r.particles = append(r.particles, newParticle(KindSplash, x, z, 1))
	r.splashes++

	n := ejectaMin + r.rng.Intn(ejectaRange)
	for range n {
		angle := r.rng.Float64() * math.Pi * 2
		dist := ejectaDistMin + r.rng.Float64()*ejectaDistSpan
		size := 0.7 + r.rng.Float64()*0.6
		r.particles = append(r.particles, newParticle(KindEjecta, x+math.Cos(angle)*dist, z+math.Sin(angle)*dist, size))
	}
}

func (r *Rain) decay(dt float64) {
	live := 0
	for _, p := range r.particles {
		if !p.age(dt) {
			if p.Kind == KindSplash {
				r.splashes--
			}
			continue
		}
		r.particles[live] = p
		live++
	}
	r.particles = r.particles[:live]
}

// Clear drops every raindrop and particle at once.
func (r *Rain) Clear() {
	r.drops = r.drops[:0]
	r.particles = r.particles[:0]
	r.splashes = 0
}

// Counts reports the live populations.
func (r *Rain) Counts() RainCounts {
	c := RainCounts{Drops: len(r.drops)}
	for _, p := range r.particles {
		switch p.Kind {
		case KindSplash:
			c.Splashes++
		case KindEjecta:
			c.Ejecta++
		case KindRipple:
			c.Ripples++
		}
	}
	return c
}

// Drops returns a copy of the falling drops.
func (r *Rain) Drops() []Raindrop {
	return append([]Raindrop(nil), r.drops...)
}

// Particles returns a copy of the live impact particles.
func (r *Rain) Particles() []Particle {
	return append([]Particle(nil), r.particles...)
}
