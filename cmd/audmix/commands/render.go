// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/config"
)

var outputPath string

var renderCmd = &cobra.Command{
	Use:   "render <scene.yaml>",
	Short: "Mix a scene into a WAV file",
	Long: `Mix every source of a scene for the scene duration and write the result
as a WAV file in the mixer format. The -o flag overrides the scene's output.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output WAV file")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	scene, err := config.Load(args[0])
	if err != nil {
		return err
	}
	out := outputPath
	if out == "" {
		out = scene.Output
	}
	if out == "" {
		return fmt.Errorf("no output file: set output in the scene or pass -o")
	}

	m, err := mixScene(scene, audmix.DefaultRegistry(), newLogger(cmd))
	if err != nil {
		return err
	}
	frames := sceneFrames(scene, m)
	pcm, err := audmix.Render(m, frames)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	format := m.Format()
	if err := wav.Encode(f, m.Frequency(), format.Channels(), format.Bits(), pcm); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	d := time.Duration(frames) * time.Second / time.Duration(m.Frequency())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d frames, %v, %d Hz %v\n", out, frames, d, m.Frequency(), format)
	return nil
}
