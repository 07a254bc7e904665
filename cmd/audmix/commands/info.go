// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Describe audio files",
	Long:  `Decode each file and print its mixer format, rate, length and duration.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	reg := audmix.DefaultRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tFORMAT\tRATE\tFRAMES\tDURATION")
	for _, path := range args {
		clip, err := audmix.DecodeFile(reg, path)
		if err != nil {
			w.Flush()
			return err
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%d\t%v\n", path, audmix.FormatOf(clip), clip.SampleRate, clip.Frames(), clip.Duration())
	}
	return w.Flush()
}
