package weather

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ParticleKind tags an impact effect. Each kind carries its own fade,
// scale and lifetime constants; one decay routine serves all of them.
type ParticleKind uint8

const (
	KindSplash ParticleKind = iota
	KindEjecta
	KindRipple
)

type kindProfile struct {
	name         string
	startOpacity float64
	fadeRate     float64 // opacity lost per second
	scaleRate    float64 // scale change per second, negative shrinks
	lifetime     float64 // seconds
	height       float64 // y of the effect above the ground plane
}

var kindProfiles = [...]kindProfile{
	KindSplash: {name: "splash", startOpacity: 0.7, fadeRate: 2, scaleRate: -2.5, lifetime: 1.0, height: 0.05},
	KindEjecta: {name: "ejecta", startOpacity: 0.8, fadeRate: 4, scaleRate: -5, lifetime: 0.2, height: 0.3},
	KindRipple: {name: "ripple", startOpacity: 0.5, fadeRate: 1.5, scaleRate: 4, lifetime: 0.5, height: 0.1},
}

// Lifetime is the age after which a particle of this kind is removed.
func (k ParticleKind) Lifetime() float64 { return kindProfiles[k].lifetime }

func (k ParticleKind) String() string { return kindProfiles[k].name }

// MarshalText renders the kind by name.
func (k ParticleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Particle is a splash, ejected droplet or lake ripple.
type Particle struct {
	Kind ParticleKind `json:"kind"`
	Pos  mgl64.Vec3   `json:"pos"`
	Age  float64      `json:"age"`
	// Size is a fixed per-particle multiplier chosen at spawn.
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
}

func newParticle(kind ParticleKind, x, z, size float64) Particle {
	p := kindProfiles[kind]
	return Particle{
		Kind:    kind,
		Pos:     mgl64.Vec3{x, p.height, z},
		Size:    size,
		Opacity: p.startOpacity,
		Scale:   1,
	}
}

// age advances the particle by dt and reports whether it is still alive.
func (p *Particle) age(dt float64) bool {
	prof := kindProfiles[p.Kind]
	p.Age += dt
	p.Opacity = math.Max(0, prof.startOpacity-p.Age*prof.fadeRate)
	p.Scale = math.Max(0, 1+p.Age*prof.scaleRate)
	return p.Age <= prof.lifetime
}
