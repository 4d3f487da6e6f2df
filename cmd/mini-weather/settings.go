package main

import (
	"fmt"

	"mini-weather/internal/config"

	"github.com/spf13/cobra"
)

// globalOptions are the flags every command shares.
type globalOptions struct {
	configPath string
	envPath    string
	seed       int64
	noRain     bool
	start      string
	audio      bool
}

func (o *globalOptions) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML settings file")
	f.StringVar(&o.envPath, "env", ".env", "dotenv file with MINI_WEATHER_* overrides")
	f.Int64Var(&o.seed, "seed", 0, "world seed (overrides settings)")
	f.BoolVar(&o.noRain, "no-rain", false, "start with rain off")
	f.StringVar(&o.start, "start", "", "start at day or night")
	f.BoolVar(&o.audio, "audio", false, "play rain ambience in interactive hosts")
}

// settings layers defaults, the YAML file, the environment and flags, in
// that order, and validates the result.
func (o *globalOptions) settings(cmd *cobra.Command) (config.Settings, error) {
	s := config.Default()
	if o.configPath != "" {
		var err error
		if s, err = config.Load(o.configPath); err != nil {
			return s, err
		}
	}

	if err := config.LoadEnvFile(o.envPath); err != nil {
		return s, err
	}
	if err := s.ApplyEnv(); err != nil {
		return s, fmt.Errorf("environment: %w", err)
	}

	if cmd.Flags().Changed("seed") {
		s.Seed = o.seed
	}
	if o.noRain {
		s.Rain.Enabled = false
	}
	if o.start != "" {
		s.Cycle.Start = o.start
	}
	if o.audio {
		s.Host.Audio = true
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	config.ApplyRuntime(s)
	return s, nil
}
