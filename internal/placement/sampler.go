package placement

import (
	"math"
	"math/rand"
)

// DefaultAttempts is the retry budget for a single placement.
const DefaultAttempts = 1000

// Footprint is a circular occupied region on the ground plane.
type Footprint struct {
	X      float64
	Z      float64
	Radius float64
}

// Distance returns the planar distance between two footprint centers.
func (f Footprint) Distance(o Footprint) float64 {
	return math.Hypot(f.X-o.X, f.Z-o.Z)
}

// Separated reports whether f and o are at least margin apart edge to edge.
func (f Footprint) Separated(o Footprint, margin float64) bool {
	return f.Distance(o) >= f.Radius+o.Radius+margin
}

// RejectFunc vetoes a candidate position, e.g. "inside a lake".
type RejectFunc func(x, z float64) bool

// Sampler places circular footprints by bounded rejection sampling.
// It holds no spatial index; each candidate is checked against every
// existing footprint.
type Sampler struct {
	rng      *rand.Rand
	Attempts int
}

// NewSampler creates a sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{
		rng:      rng,
		Attempts: DefaultAttempts,
	}
}

// Place draws positions uniformly in [-bounds/2, bounds/2]² until one keeps
// radius+other.Radius+minSeparation clearance from every existing footprint
// and is not vetoed by reject. Points-only populations pass radius 0 and
// zero-radius footprints, which reduces the test to a flat minSeparation.
//
// When the attempt budget runs out the last candidate is returned with
// ok=false. Callers accept it; density is best effort.
func (s *Sampler) Place(existing []Footprint, radius, minSeparation, bounds float64, reject RejectFunc) (x, z float64, ok bool) {
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for range attempts {
		x = (s.rng.Float64() - 0.5) * bounds
		z = (s.rng.Float64() - 0.5) * bounds
		if s.accepts(existing, Footprint{X: x, Z: z, Radius: radius}, minSeparation, reject) {
			return x, z, true
		}
	}
	return x, z, false
}

func (s *Sampler) accepts(existing []Footprint, c Footprint, minSeparation float64, reject RejectFunc) bool {
	for _, other := range existing {
		if !c.Separated(other, minSeparation) {
			return false
		}
	}
	if reject != nil && reject(c.X, c.Z) {
		return false
	}
	return true
}
