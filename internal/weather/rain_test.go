package weather

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// pond is a single round lake at the origin.
type pond struct{ radius float64 }

func (p pond) IsInside(x, z float64) bool {
	return x*x+z*z < (p.radius-0.3)*(p.radius-0.3)
}

func newTestRain(lakes LakeQuery, seed int64) *Rain {
	return NewRain(RainConfig{}, lakes, rand.New(rand.NewSource(seed)))
}

func dropAt(x, y, z float64) Raindrop {
	return Raindrop{Pos: mgl64.Vec3{x, y, z}}
}

func TestImpactInsideLakeMakesRipple(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := newTestRain(pond{radius: 10}, seed)
		r.drops = append(r.drops, dropAt(2, 0.5, -3))
		r.Update(0.01)

		c := r.Counts()
		if c.Ripples != 1 || c.Splashes != 0 || c.Ejecta != 0 {
			t.Errorf("seed %d: lake impact gave %+v, want exactly one ripple", seed, c)
		}
		if c.Drops != 0 {
			t.Errorf("seed %d: drop survived impact", seed)
		}
	}
}

func TestImpactOnGroundMakesSplashAndEjecta(t *testing.T) {
	seen := map[int]bool{}
	for seed := int64(1); seed <= 200; seed++ {
		r := newTestRain(pond{radius: 10}, seed)
		r.drops = append(r.drops, dropAt(50, 0.5, 50))
		r.Update(0.01)

		c := r.Counts()
		if c.Splashes != 1 || c.Ripples != 0 {
			t.Fatalf("seed %d: ground impact gave %+v, want one splash and no ripple", seed, c)
		}
		if c.Ejecta < 2 || c.Ejecta > 5 {
			t.Fatalf("seed %d: %d ejecta, want 2..5", seed, c.Ejecta)
		}
		seen[c.Ejecta] = true

		for _, p := range r.Particles() {
			if p.Kind != KindEjecta {
				continue
			}
			d := mgl64.Vec2{p.Pos.X() - 50, p.Pos.Z() - 50}.Len()
			if d < 1-1e-9 || d > 3+1e-9 {
				t.Errorf("seed %d: ejecta %f from impact, want [1,3]", seed, d)
			}
		}
	}
	for n := 2; n <= 5; n++ {
		if !seen[n] {
			t.Errorf("ejecta count %d never produced", n)
		}
	}
}

func TestImpactOnLakeEdgeUsesWaveMargin(t *testing.T) {
	r := newTestRain(pond{radius: 10}, 1)
	// inside the lake radius but within the wave margin of the shore
	r.drops = append(r.drops, dropAt(9.8, 0.5, 0))
	r.Update(0.01)
	if c := r.Counts(); c.Splashes != 1 || c.Ripples != 0 {
		t.Errorf("impact in the shore margin gave %+v, want a splash", c)
	}
}

func TestSpawnBurstRedrawsInterval(t *testing.T) {
	r := newTestRain(nil, 4)

	r.Update(1.99)
	if n := len(r.drops); n != 0 {
		t.Fatalf("expected no drops before the first interval elapses, got %d", n)
	}

	// The next frame crosses the initial 2s wait and then keeps spawning at
	// sub-millisecond intervals.
	r.Update(1.0 / 60)
	n := len(r.drops)
	if n < 1 {
		t.Fatal("expected a burst of drops")
	}
	if r.spawnInterval < spawnIntervalMin || r.spawnInterval >= spawnIntervalMin+spawnIntervalRange {
		t.Errorf("spawn interval %f outside redraw range", r.spawnInterval)
	}

	r.Update(1.0 / 60)
	burst := len(r.drops) - n
	// 1/60s over intervals of at most 0.6ms
	if burst < 27 {
		t.Errorf("expected at least 27 drops in one frame, got %d", burst)
	}
}

func TestSpawnedDropsInArea(t *testing.T) {
	r := NewRain(RainConfig{AreaSize: 40}, nil, rand.New(rand.NewSource(2)))
	r.Update(1.99)
	r.Update(0.05)
	if len(r.drops) == 0 {
		t.Fatal("expected drops")
	}
	for _, d := range r.Drops() {
		x, y, z := d.Pos.Elem()
		if x < -20 || x > 20 || z < -20 || z > 20 {
			t.Errorf("drop (%f, %f) outside the 40x40 area", x, z)
		}
		if y >= 150 || y < 50-FallSpeed*0.05 {
			t.Errorf("drop height %f implausible", y)
		}
	}
}

func TestParticleDecayOrder(t *testing.T) {
	r := newTestRain(pond{radius: 10}, 3)
	r.drops = append(r.drops, dropAt(50, 0.1, 50), dropAt(0, 0.1, 0))
	r.Update(0.01)

	steps := []struct {
		dt                       float64
		splashes, ejecta, ripple int
	}{
		{0.2, 1, 0, 1}, // age 0.21: ejecta gone
		{0.3, 1, 0, 0}, // age 0.51: ripple gone
		{0.5, 0, 0, 0}, // age 1.01: splash gone
	}
	for i, s := range steps {
		r.Update(s.dt)
		c := r.Counts()
		if c.Splashes != s.splashes || c.Ejecta != s.ejecta || c.Ripples != s.ripple {
			t.Errorf("step %d: got %+v, want splashes=%d ejecta=%d ripples=%d", i, c, s.splashes, s.ejecta, s.ripple)
		}
	}
}

func TestParticleFadeAndScale(t *testing.T) {
	cases := []struct {
		kind           ParticleKind
		age            float64
		opacity, scale float64
	}{
		{KindSplash, 0.1, 0.5, 0.75},
		{KindEjecta, 0.1, 0.4, 0.5},
		{KindRipple, 0.2, 0.2, 1.8},
		{KindEjecta, 0.19, 0.04, 0.05},
		{KindSplash, 0.5, 0, 0},
	}
	for _, c := range cases {
		p := newParticle(c.kind, 0, 0, 1)
		alive := p.age(c.age)
		if !alive {
			t.Errorf("%s at age %f should be alive", c.kind, c.age)
		}
		if diff := p.Opacity - c.opacity; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s at age %f: opacity %f, want %f", c.kind, c.age, p.Opacity, c.opacity)
		}
		if diff := p.Scale - c.scale; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s at age %f: scale %f, want %f", c.kind, c.age, p.Scale, c.scale)
		}
	}
}

func TestSplashCapacity(t *testing.T) {
	r := NewRain(RainConfig{MaxSplashes: 3}, pond{radius: 10}, rand.New(rand.NewSource(8)))
	for i := range 5 {
		r.drops = append(r.drops, dropAt(50+float64(i)*10, 0.1, 50))
	}
	r.drops = append(r.drops, dropAt(0, 0.1, 0), dropAt(1, 0.1, 1))
	r.Update(0.01)

	c := r.Counts()
	if c.Splashes != 3 {
		t.Errorf("expected splashes capped at 3, got %d", c.Splashes)
	}
	if c.Ripples != 2 {
		t.Errorf("ripples should ignore the splash cap, got %d", c.Ripples)
	}
	if c.Ejecta < 6 || c.Ejecta > 15 {
		t.Errorf("expected ejecta only for accepted splashes, got %d", c.Ejecta)
	}
	if c.Drops != 0 {
		t.Errorf("suppressed splashes must still consume their drops, %d left", c.Drops)
	}

	// Once splashes expire the budget frees up again.
	r.Update(1.0)
	r.drops = append(r.drops, dropAt(-50, 0.1, -50))
	r.Update(0.01)
	if c := r.Counts(); c.Splashes != 1 {
		t.Errorf("expected budget to recover after expiry, got %d splashes", c.Splashes)
	}
}

func TestClearEmptiesEverything(t *testing.T) {
	r := newTestRain(pond{radius: 30}, 6)
	for range 150 {
		r.Update(1.0 / 60)
	}
	if c := r.Counts(); c.Drops == 0 {
		t.Fatalf("expected active rain before clearing, got %+v", c)
	}
	r.Clear()
	if c := r.Counts(); c != (RainCounts{}) {
		t.Errorf("expected empty populations after Clear, got %+v", c)
	}
	if r.splashes != 0 {
		t.Errorf("splash budget not reset: %d", r.splashes)
	}
}

func TestReadersGetCopies(t *testing.T) {
	r := newTestRain(nil, 1)
	r.drops = append(r.drops, dropAt(0, 10, 0))
	drops := r.Drops()
	drops[0].Pos[1] = -100
	if r.drops[0].Pos.Y() != 10 {
		t.Error("Drops must not alias internal state")
	}
}

func BenchmarkRainUpdate(b *testing.B) {
	r := newTestRain(pond{radius: 30}, 1)
	for range 180 {
		r.Update(1.0 / 60)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Update(1.0 / 60)
	}
}
