// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/output"
)

var playCmd = &cobra.Command{
	Use:   "play <scene.yaml>",
	Short: "Mix a scene to the audio device",
	Long: `Mix a scene live to the default audio device for the scene duration.
Interrupt stops playback early.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	scene, err := config.Load(args[0])
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	m, err := mixScene(scene, audmix.DefaultRegistry(), logger)
	if err != nil {
		return err
	}

	f := m.Format()
	p, err := output.NewPlayer(m.Frequency(), f.Channels(), f.BytesPerChannel())
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("playing", "scene", args[0], "duration", scene.Length())
	err = p.Play(ctx, m, scene.Length())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
