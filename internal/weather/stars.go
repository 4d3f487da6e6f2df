package weather

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultStarCount is the size of the star field.
const DefaultStarCount = 500

// StarState is the star field's per-frame material state.
type StarState struct {
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`
}

// Stars is a fixed point cloud on a shell around the viewer. Only its
// opacity changes over time.
type Stars struct {
	Points  []mgl32.Vec3
	raining bool
}

// NewStars scatters count stars at radius [800, 1000), lifted 100 units so
// the lower half stays mostly above ground.
func NewStars(rng *rand.Rand, count int) *Stars {
	points := make([]mgl32.Vec3, count)
	for i := range points {
		phi := rng.Float64() * math.Pi * 2
		theta := rng.Float64() * math.Pi
		radius := 800 + rng.Float64()*200
		points[i] = mgl32.Vec3{
			float32(math.Sin(theta) * math.Cos(phi) * radius),
			float32(math.Cos(theta)*radius + 100),
			float32(math.Sin(theta) * math.Sin(phi) * radius),
		}
	}
	return &Stars{Points: points}
}

// SetRaining hides the stars while rain is on.
func (s *Stars) SetRaining(raining bool) {
	s.raining = raining
}

// Update maps a night factor (0 day, 1 full night) to star opacity.
func (s *Stars) Update(nightFactor float64) StarState {
	if s.raining {
		return StarState{}
	}
	return StarState{
		Opacity: nightFactor,
		Visible: nightFactor > 0.01,
	}
}
