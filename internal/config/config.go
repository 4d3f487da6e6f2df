package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks settings that fail validation.
var ErrInvalid = errors.New("invalid settings")

// WorldSettings sizes the static scene.
type WorldSettings struct {
	GroundSize      float64 `yaml:"ground_size"`
	NumLakes        int     `yaml:"num_lakes"`
	LakeMinSize     float64 `yaml:"lake_min_size"`
	LakeMaxSize     float64 `yaml:"lake_max_size"`
	NumTrees        int     `yaml:"num_trees"`
	MinTreeDistance float64 `yaml:"min_tree_distance"`
}

// RainSettings controls the rain simulator.
type RainSettings struct {
	Enabled     bool    `yaml:"enabled"`
	AreaSize    float64 `yaml:"area_size"`
	MaxSplashes int     `yaml:"max_splashes"`
}

// CycleSettings controls the day-night clock.
type CycleSettings struct {
	Duration float64 `yaml:"duration"`
	// Start is "", "day" or "night".
	Start string `yaml:"start"`
}

// HostSettings configures the interactive front ends.
type HostSettings struct {
	FPSLimit int    `yaml:"fps_limit"`
	Listen   string `yaml:"listen"`
	Audio    bool   `yaml:"audio"`
}

// Settings is the full configuration of a scene run.
type Settings struct {
	Seed  int64         `yaml:"seed"`
	World WorldSettings `yaml:"world"`
	Rain  RainSettings  `yaml:"rain"`
	Cycle CycleSettings `yaml:"cycle"`
	Host  HostSettings  `yaml:"host"`
}

// Default returns the stock scene: 400x400 ground, 40 lakes, 400 trees,
// rain on over a 200x200 area and a one-minute day.
func Default() Settings {
	return Settings{
		Seed: 1,
		World: WorldSettings{
			GroundSize:      400,
			NumLakes:        40,
			LakeMinSize:     10,
			LakeMaxSize:     30,
			NumTrees:        400,
			MinTreeDistance: 10,
		},
		Rain: RainSettings{
			Enabled:     true,
			AreaSize:    200,
			MaxSplashes: 500,
		},
		Cycle: CycleSettings{
			Duration: 60,
		},
		Host: HostSettings{
			FPSLimit: 60,
			Listen:   ":8080",
		},
	}
}

// Load reads YAML settings from path on top of Default.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings YAML: %w", err)
	}
	return s, s.Validate()
}

// Validate fails fast on settings the core cannot run with.
func (s Settings) Validate() error {
	w := s.World
	switch {
	case w.GroundSize <= 0:
		return fmt.Errorf("%w: world.ground_size must be positive, got %v", ErrInvalid, w.GroundSize)
	case w.NumLakes < 0 || w.NumTrees < 0:
		return fmt.Errorf("%w: entity counts must not be negative (lakes=%d trees=%d)", ErrInvalid, w.NumLakes, w.NumTrees)
	case w.LakeMinSize <= 0:
		return fmt.Errorf("%w: world.lake_min_size must be positive, got %v", ErrInvalid, w.LakeMinSize)
	case w.LakeMinSize > w.LakeMaxSize:
		return fmt.Errorf("%w: world.lake_min_size %v exceeds world.lake_max_size %v", ErrInvalid, w.LakeMinSize, w.LakeMaxSize)
	case w.MinTreeDistance < 0:
		return fmt.Errorf("%w: world.min_tree_distance must not be negative, got %v", ErrInvalid, w.MinTreeDistance)
	case s.Rain.AreaSize <= 0:
		return fmt.Errorf("%w: rain.area_size must be positive, got %v", ErrInvalid, s.Rain.AreaSize)
	case s.Rain.MaxSplashes <= 0:
		return fmt.Errorf("%w: rain.max_splashes must be positive, got %d", ErrInvalid, s.Rain.MaxSplashes)
	case s.Cycle.Duration <= 0:
		return fmt.Errorf("%w: cycle.duration must be positive, got %v", ErrInvalid, s.Cycle.Duration)
	}
	switch s.Cycle.Start {
	case "", "day", "night":
	default:
		return fmt.Errorf("%w: cycle.start must be day or night, got %q", ErrInvalid, s.Cycle.Start)
	}
	return nil
}
