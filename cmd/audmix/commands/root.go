// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "audmix",
	Short: "Software audio mixer",
	Long: `audmix - mix audio files described by a scene file.

A scene lists the mixer format and the sources to play:

  mixer:
    frequency: 44100
    format: stereo16     # mono8, stereo8, mono16, stereo16
    quality: medium      # low, medium, high
  duration: 10s
  output: mix.wav
  sources:
    - file: drums.wav
      looping: true
    - file: voice.ogg
      gain: 0.8
      delay: 1.5s
      repeat: 2

Supported inputs: wav, aiff, mp3, ogg.

Examples:
  audmix render scene.yaml -o mix.wav
  audmix play scene.yaml
  audmix info drums.wav voice.ogg`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log mixer events to stderr")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}
