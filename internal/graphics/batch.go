package graphics

import (
	"math"

	"mini-weather/internal/game"
	"mini-weather/internal/weather"
	"mini-weather/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is x, y, r, g, b, a.
const FloatsPerVertex = 6

const treeSegments = 8

var (
	groundColor = mgl32.Vec3{0.30, 0.55, 0.25}
	lakeColor   = mgl32.Vec3{0.20, 0.45, 0.75}
	dropColor   = mgl32.Vec4{0.75, 0.80, 0.90, 0.6}
	rippleColor = mgl32.Vec3{0.80, 0.90, 1.00}
	splashColor = mgl32.Vec3{0.90, 0.92, 0.95}
)

// Batch is the CPU side of one frame's geometry in top-down space.
type Batch struct {
	Triangles []float32
	Points    []float32
}

// Reset keeps capacity for the next frame.
func (b *Batch) Reset() {
	b.Triangles = b.Triangles[:0]
	b.Points = b.Points[:0]
}

func (b *Batch) TriangleCount() int { return len(b.Triangles) / (3 * FloatsPerVertex) }
func (b *Batch) PointCount() int    { return len(b.Points) / FloatsPerVertex }

// flat projects world X/Z to batch space.
func flat(x, z float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(x), float32(-z)}
}

func appendVertex(dst []float32, p mgl32.Vec2, c mgl32.Vec4) []float32 {
	return append(dst, p[0], p[1], c[0], c[1], c[2], c[3])
}

func (b *Batch) triangle(p0, p1, p2 mgl32.Vec2, c mgl32.Vec4) {
	b.Triangles = appendVertex(b.Triangles, p0, c)
	b.Triangles = appendVertex(b.Triangles, p1, c)
	b.Triangles = appendVertex(b.Triangles, p2, c)
}

func (b *Batch) point(p mgl32.Vec2, c mgl32.Vec4) {
	b.Points = appendVertex(b.Points, p, c)
}

// fan closes a polygon around center.
func (b *Batch) fan(center mgl32.Vec2, rim []mgl32.Vec2, c mgl32.Vec4) {
	for i := range rim {
		b.triangle(center, rim[i], rim[(i+1)%len(rim)], c)
	}
}

func shade(c mgl32.Vec3, light float32, alpha float32) mgl32.Vec4 {
	return c.Mul(light).Vec4(alpha)
}

// AddWorld draws ground, lakes and trees lit by light.
func (b *Batch) AddWorld(w *world.World, light float32) {
	half := w.GroundSize / 2
	g := shade(groundColor, light, 1)
	b.triangle(flat(-half, -half), flat(half, -half), flat(half, half), g)
	b.triangle(flat(-half, -half), flat(half, half), flat(-half, half), g)

	water := shade(lakeColor, light, 1)
	for _, l := range w.Lakes.Lakes() {
		outline := l.Outline()
		rim := make([]mgl32.Vec2, len(outline))
		for i, p := range outline {
			rim[i] = flat(p.X(), p.Y())
		}
		b.fan(flat(l.X, l.Z), rim, water)
	}

	var rim [treeSegments]mgl32.Vec2
	for _, t := range w.Forest.Trees() {
		center := flat(t.X, t.Z)
		// widest tier first so the narrower ones sit on top
		for j, tier := range t.Tiers {
			r := float64(tier.Radius * t.Scale)
			for k := range rim {
				a := float64(k) / treeSegments * 2 * math.Pi
				rim[k] = flat(t.X+math.Cos(a)*r, t.Z+math.Sin(a)*r)
			}
			tone := t.Color().Mul(1 + 0.12*float32(j))
			b.fan(center, rim[:], shade(tone, light, 1))
		}
	}
}

// AddRain draws drops and impact particles from a frame.
func (b *Batch) AddRain(f game.Frame) {
	for _, d := range f.Drops {
		b.point(flat(d.Pos.X(), d.Pos.Z()), dropColor)
	}
	for _, p := range f.Particles {
		c := splashColor
		if p.Kind == weather.KindRipple {
			c = rippleColor
		}
		b.point(flat(p.Pos.X(), p.Pos.Z()), c.Vec4(float32(p.Opacity)))
	}
}

// Build fills the batch for one frame.
func (b *Batch) Build(w *world.World, f game.Frame) {
	b.Reset()
	b.AddWorld(w, float32(f.Environment.Light()))
	b.AddRain(f)
}
