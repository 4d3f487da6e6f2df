package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "MINI_WEATHER_"

// LoadEnvFile loads a dotenv file into the process environment. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides s from MINI_WEATHER_* variables in the process
// environment.
func (s *Settings) ApplyEnv() error {
	return s.ApplyOverrides(func(key string) (string, bool) {
		return os.LookupEnv(key)
	})
}

// ApplyOverrides overrides s from lookup, keyed by EnvPrefix + name.
func (s *Settings) ApplyOverrides(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"NUM_LAKES":    &s.World.NumLakes,
		"NUM_TREES":    &s.World.NumTrees,
		"MAX_SPLASHES": &s.Rain.MaxSplashes,
		"FPS_LIMIT":    &s.Host.FPSLimit,
	}
	floats := map[string]*float64{
		"GROUND_SIZE":       &s.World.GroundSize,
		"LAKE_MIN_SIZE":     &s.World.LakeMinSize,
		"LAKE_MAX_SIZE":     &s.World.LakeMaxSize,
		"MIN_TREE_DISTANCE": &s.World.MinTreeDistance,
		"RAIN_AREA":         &s.Rain.AreaSize,
		"CYCLE_DURATION":    &s.Cycle.Duration,
	}
	bools := map[string]*bool{
		"RAIN":  &s.Rain.Enabled,
		"AUDIO": &s.Host.Audio,
	}

	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}
	for name, dst := range floats {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}
	for name, dst := range bools {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		s.Seed = n
	}
	if v, ok := lookup(EnvPrefix + "CYCLE_START"); ok {
		s.Cycle.Start = v
	}
	if v, ok := lookup(EnvPrefix + "LISTEN"); ok {
		s.Host.Listen = v
	}
	return nil
}
