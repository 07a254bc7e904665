// SPDX-License-Identifier: EPL-2.0

// Command audmix mixes scene files into WAV files or plays them.
//
// Usage:
//
//	audmix [flags] <command> [args]
//
// Commands:
//
//	render  - Mix a scene into a WAV file
//	play    - Mix a scene to the audio device
//	info    - Describe audio files
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audmix/cmd/audmix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
