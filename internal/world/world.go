package world

import (
	"errors"
	"fmt"
	"math/rand"

	"mini-weather/internal/profiling"
)

// ErrInvalidConfig is returned by BuildWorld for unusable parameters.
var ErrInvalidConfig = errors.New("invalid world config")

// Config holds the world-build parameters.
type Config struct {
	GroundSize      float64
	NumLakes        int
	LakeMinSize     float64
	LakeMaxSize     float64
	NumTrees        int
	MinTreeDistance float64
}

// Validate rejects configurations the generators cannot honour.
func (c Config) Validate() error {
	switch {
	case c.GroundSize <= 0:
		return fmt.Errorf("%w: ground size %v must be positive", ErrInvalidConfig, c.GroundSize)
	case c.NumLakes < 0:
		return fmt.Errorf("%w: lake count %d is negative", ErrInvalidConfig, c.NumLakes)
	case c.NumTrees < 0:
		return fmt.Errorf("%w: tree count %d is negative", ErrInvalidConfig, c.NumTrees)
	case c.LakeMinSize <= 0:
		return fmt.Errorf("%w: lake min size %v must be positive", ErrInvalidConfig, c.LakeMinSize)
	case c.LakeMinSize > c.LakeMaxSize:
		return fmt.Errorf("%w: lake min size %v exceeds max size %v", ErrInvalidConfig, c.LakeMinSize, c.LakeMaxSize)
	case c.MinTreeDistance < 0:
		return fmt.Errorf("%w: tree distance %v is negative", ErrInvalidConfig, c.MinTreeDistance)
	}
	return nil
}

// World is the static scene: a square ground with lakes and trees.
// Nothing in it changes after BuildWorld returns.
type World struct {
	GroundSize float64
	Lakes      *LakeField
	Forest     *ForestField
	Seed       int64
}

// BuildWorld generates lakes first and then trees around them.
func BuildWorld(cfg Config, seed int64) (*World, error) {
	defer profiling.Track("world.BuildWorld")()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	lakes := GenerateLakes(rng, cfg.NumLakes, cfg.LakeMinSize, cfg.LakeMaxSize, cfg.GroundSize)
	forest := GenerateForest(rng, cfg.NumTrees, cfg.MinTreeDistance, cfg.GroundSize, lakes)

	return &World{
		GroundSize: cfg.GroundSize,
		Lakes:      lakes,
		Forest:     forest,
		Seed:       seed,
	}, nil
}

// GroundY returns the ground height at (x, z). The ground is flat.
func (w *World) GroundY(x, z float64) float64 {
	return 0
}

// IsInsideLake forwards to the lake field.
func (w *World) IsInsideLake(x, z float64) bool {
	return w.Lakes.IsInside(x, z)
}
