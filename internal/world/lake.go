package world

import (
	"math"
	"math/rand"

	"mini-weather/internal/placement"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// LakeSegments is the number of boundary samples per lake.
	LakeSegments = 64
	// MinLakeGap is the edge-to-edge clearance between two lakes.
	MinLakeGap = 10.0
	// WaveMargin insets lake membership so ripples stay inside the water.
	WaveMargin = 0.3

	shoreAmplitude = 0.15
)

// LakeShape is a closed noisy outline in lake-local coordinates.
// Local Y maps to world -Z once the lake is laid flat on the ground.
type LakeShape struct {
	Points         []mgl64.Vec2
	Size           float64 // nominal diameter drawn from the size range
	BoundingRadius float64
}

// Lake is one placed water body.
type Lake struct {
	placement.Footprint
	Shape LakeShape
	// BestEffort is set when the attempt budget ran out and the lake may
	// sit closer than MinLakeGap to a neighbour.
	BestEffort bool
}

// Outline returns the boundary in world X/Z coordinates.
func (l Lake) Outline() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(l.Shape.Points))
	for i, p := range l.Shape.Points {
		out[i] = mgl64.Vec2{l.X + p.X(), l.Z - p.Y()}
	}
	return out
}

// LakeField owns every lake for the lifetime of a world.
type LakeField struct {
	lakes     []Lake
	fallbacks int
}

// NewLakeField wraps already placed lakes, mostly for tests and replays.
func NewLakeField(lakes []Lake) *LakeField {
	return &LakeField{lakes: lakes}
}

// GenerateLakes builds count lakes with diameters in [minSize, maxSize) and
// scatters them over a bounds×bounds ground keeping MinLakeGap between edges.
func GenerateLakes(rng *rand.Rand, count int, minSize, maxSize, bounds float64) *LakeField {
	sampler := placement.NewSampler(rng)
	noise := NewShoreNoise(rng.Int63())
	field := &LakeField{lakes: make([]Lake, 0, count)}
	footprints := make([]placement.Footprint, 0, count)

	for range count {
		size := minSize + rng.Float64()*(maxSize-minSize)
		shape := newLakeShape(rng, noise, size)

		x, z, ok := sampler.Place(footprints, shape.BoundingRadius, MinLakeGap, bounds, nil)
		if !ok {
			field.fallbacks++
		}
		fp := placement.Footprint{X: x, Z: z, Radius: shape.BoundingRadius}
		footprints = append(footprints, fp)
		field.lakes = append(field.lakes, Lake{Footprint: fp, Shape: shape, BestEffort: !ok})
	}
	return field
}

func newLakeShape(rng *rand.Rand, noise ShoreNoise, size float64) LakeShape {
	amp := size * shoreAmplitude
	scale := rng.Float64()*2 + 2
	offset := rng.Float64() * 1000

	points := make([]mgl64.Vec2, LakeSegments)
	for s := range LakeSegments {
		theta := float64(s) / LakeSegments * 2 * math.Pi
		r := size/2 + noise.At(math.Cos(theta+offset)*scale, math.Sin(theta+offset)*scale)*amp
		points[s] = mgl64.Vec2{math.Cos(theta) * r, math.Sin(theta) * r}
	}

	radius := boundingRadius(points)
	if radius == 0 {
		radius = size / 2
	}
	return LakeShape{Points: points, Size: size, BoundingRadius: radius}
}

// boundingRadius measures the outline from its bounding-box center, the same
// sphere a mesh library reports for the flattened shape.
func boundingRadius(points []mgl64.Vec2) float64 {
	if len(points) == 0 {
		return 0
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = mgl64.Vec2{math.Min(lo.X(), p.X()), math.Min(lo.Y(), p.Y())}
		hi = mgl64.Vec2{math.Max(hi.X(), p.X()), math.Max(hi.Y(), p.Y())}
	}
	center := lo.Add(hi).Mul(0.5)
	r := 0.0
	for _, p := range points {
		r = math.Max(r, p.Sub(center).Len())
	}
	return r
}

// IsInside reports whether (x, z) lies inside a lake, inset by WaveMargin.
func (f *LakeField) IsInside(x, z float64) bool {
	if f == nil {
		return false
	}
	for _, l := range f.lakes {
		if math.Hypot(x-l.X, z-l.Z) < l.Radius-WaveMargin {
			return true
		}
	}
	return false
}

// Lakes returns the placed lakes. The slice must not be modified.
func (f *LakeField) Lakes() []Lake {
	if f == nil {
		return nil
	}
	return f.lakes
}

// Footprints returns a copy of every lake's footprint.
func (f *LakeField) Footprints() []placement.Footprint {
	out := make([]placement.Footprint, len(f.Lakes()))
	for i, l := range f.Lakes() {
		out[i] = l.Footprint
	}
	return out
}

// Fallbacks counts lakes placed after the attempt budget ran out.
func (f *LakeField) Fallbacks() int {
	if f == nil {
		return 0
	}
	return f.fallbacks
}
