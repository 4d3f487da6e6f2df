package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"mini-weather/internal/game"
	"mini-weather/internal/preview"
	"mini-weather/internal/world"

	"github.com/spf13/cobra"
)

func buildCmd(opts *globalOptions) *cobra.Command {
	var (
		out      string
		outlines bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the world and print its lakes and trees as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			w, err := world.BuildWorld(game.WorldConfig(s), s.Seed)
			if err != nil {
				return err
			}
			sum := game.Summarize(w, outlines)
			if sum.LakeFallbacks+sum.TreeFallbacks > 0 {
				log.Printf("placement budget ran out for %d lakes and %d trees", sum.LakeFallbacks, sum.TreeFallbacks)
			}
			return writeOutput(out, func(dst io.Writer) error {
				enc := json.NewEncoder(dst)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&outlines, "outlines", false, "include lake outlines")
	return cmd
}

func simulateCmd(opts *globalOptions) *cobra.Command {
	var (
		frames int
		dt     float64
		every  int
		bodies bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scene headless and emit frames as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dt <= 0 || every <= 0 {
				return fmt.Errorf("--dt and --every must be positive")
			}
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			sess, err := game.NewSession(s)
			if err != nil {
				return err
			}
			sess.IncludeBodies = bodies

			start := time.Now()
			err = writeOutput(out, func(dst io.Writer) error {
				enc := json.NewEncoder(dst)
				return game.FixedStep{Dt: dt}.Run(cmd.Context(), sess, frames, func(f game.Frame) error {
					if f.Index%every != 0 {
						return nil
					}
					return enc.Encode(f)
				})
			})
			if err != nil {
				return err
			}
			log.Printf("simulated %d frames (%.1fs of scene time) in %v",
				sess.Frames(), sess.Clock.Time(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 600, "number of updates")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per update")
	cmd.Flags().IntVar(&every, "every", 60, "emit every Nth frame")
	cmd.Flags().BoolVar(&bodies, "bodies", false, "include drop and particle positions")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func previewCmd(opts *globalOptions) *cobra.Command {
	var (
		seconds float64
		dt      float64
		size    int
		out     string
		noHUD   bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Simulate for a while and write a top-down PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			sess, err := game.NewSession(s)
			if err != nil {
				return err
			}

			frames := max(1, int(seconds/dt))
			var last game.Frame
			err = game.FixedStep{Dt: dt}.Run(cmd.Context(), sess, frames, func(f game.Frame) error {
				last = f
				return nil
			})
			if err != nil {
				return err
			}

			img := preview.Render(sess.World, last, preview.Options{Size: size, Supersample: 2, HUD: !noHUD})
			if err := writeOutput(out, func(dst io.Writer) error { return preview.WritePNG(dst, img) }); err != nil {
				return err
			}
			log.Printf("wrote %s after %.1fs of scene time", out, sess.Clock.Time())
			return nil
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 5, "scene time to simulate before the snapshot")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per update")
	cmd.Flags().IntVar(&size, "size", 800, "image edge in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "output PNG")
	cmd.Flags().BoolVar(&noHUD, "no-hud", false, "omit the text overlay")
	return cmd
}

// writeOutput hands fn a buffered writer on path, or stdout for "-".
func writeOutput(path string, fn func(io.Writer) error) (err error) {
	var dst io.Writer = os.Stdout
	if path != "-" && path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		dst = f
	}

	bw := bufio.NewWriter(dst)
	if err := fn(bw); err != nil {
		return err
	}
	return bw.Flush()
}
