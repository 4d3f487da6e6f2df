package main

import (
	"context"
	"log"
	"time"

	"mini-weather/internal/audio"
	"mini-weather/internal/config"
	"mini-weather/internal/game"
	"mini-weather/internal/graphics/renderer"
	"mini-weather/internal/stream"
	"mini-weather/internal/tui"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"
)

// startAudio is best effort: a machine without a sound device still runs.
func startAudio(s config.Settings) *audio.Ambience {
	if !s.Host.Audio {
		return nil
	}
	a := audio.NewAmbience(s.Seed)
	if err := a.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
		return nil
	}
	return a
}

func viewCmd(opts *globalOptions) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window with the live scene",
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

			if err := glfw.Init(); err != nil {
				return err
			}
			defer glfw.Terminate()

			window, err := renderer.SetupWindow(width, height, "mini-weather")
			if err != nil {
				return err
			}
			defer window.Destroy()

			v, err := renderer.NewViewer(window, sess)
			if err != nil {
				return err
			}
			defer v.Dispose()

			if a := startAudio(s); a != nil {
				defer a.Cleanup()
				v.OnFrame = a.Update
			}
			log.Printf("R toggles rain, T/N jump to day/night, WASD pans, scroll zooms")
			v.Run()
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 900, "window width")
	cmd.Flags().IntVar(&height, "height", 900, "window height")
	return cmd
}

func tuiCmd(opts *globalOptions) *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Watch the scene in the terminal",
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

			screen, err := tui.OpenScreen()
			if err != nil {
				return err
			}
			defer screen.Fini()

			v := tui.NewViewer(screen, sess)
			if a := startAudio(s); a != nil {
				defer a.Cleanup()
				v.OnFrame = a.Update
			}
			return v.Run(cmd.Context(), time.Second/time.Duration(max(1, fps)))
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 30, "terminal refresh rate")
	return cmd
}

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		listen string
		dt     float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scene in real time and stream frames over a websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				s.Host.Listen = listen
			}
			sess, err := game.NewSession(s)
			if err != nil {
				return err
			}
			srv, err := stream.NewServer(s.Host.Listen, sess, dt)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			finished := make(chan error, 1)
			go func() {
				err := srv.Run(ctx)
				finished <- err
				if ctx.Err() == nil {
					// the server stopped on its own; let closer unwind
					closer.Close()
				}
			}()

			closer.Bind(func() {
				cancel()
				if err := <-finished; err != nil {
					log.Printf("serve: %v", err)
				}
				log.Printf("served %d frames", sess.Frames())
			})
			closer.Hold()
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "listen address (overrides settings)")
	cmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per update")
	return cmd
}
