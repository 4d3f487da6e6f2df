package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

func init() {
	// glfw needs every window call on the main thread
	runtime.LockOSThread()
}

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "mini-weather",
		Short: "Outdoor scene with lakes, a forest, rain and a day-night cycle",
		SilenceUsage: true,
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(buildCmd(&opts))
	rootCmd.AddCommand(simulateCmd(&opts))
	rootCmd.AddCommand(previewCmd(&opts))
	rootCmd.AddCommand(viewCmd(&opts))
	rootCmd.AddCommand(tuiCmd(&opts))
	rootCmd.AddCommand(serveCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
