// SPDX-License-Identifier: EPL-2.0

// Package audmix ties decoded audio files to the software mixer.
//
// The engine itself lives in the mixer subpackage; this package offers the
// glue most programs need around it: decoding files with the registered
// format decoders, loading the result into mixer buffers, and rendering a
// fixed number of mixed frames.
//
// # Supported Formats
//
// DefaultRegistry decodes:
//   - WAV (PCM 8/16-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	m, _ := mixer.NewMixer(mixer.DefaultConfig())
//	buf, _ := audmix.LoadFile(m.Buffers(), audmix.DefaultRegistry(), "drums.wav")
//
//	srcs, _ := m.Sources().Allocate(1)
//	_ = m.Sources().QueueBuffers(srcs[0], buf)
//	_ = m.Sources().Play(srcs[0])
//
//	pcm, _ := audmix.Render(m, 44100) // one second
//	out, _ := os.Create("mix.wav")
//	_ = wav.Encode(out, m.Frequency(), m.Format().Channels(), m.Format().Bits(), pcm)
//
// See the individual subpackages for more detailed documentation.
package audmix
