// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software audio mixing engine.
//
// A Mixer owns two pools of opaque handles. Buffers hold PCM that has been
// converted once, at fill time, into the mixer's sample width. Sources play
// a FIFO queue of buffers with their own gain, looping flag and playback
// cursor. Reading from the Mixer sums every playing source into frames of
// the configured output format and advances their cursors.
//
// # Formats
//
// External PCM is either 8-bit unsigned or 16-bit signed little-endian, mono
// or stereo, interleaved. Stereo buffers fed into a mono mixer are averaged
// down when filled; mono buffers fed into a stereo mixer stay mono and are
// duplicated onto both channels while mixing.
//
// # Resampling
//
// Buffers may be filled at any positive rate. The mixer walks each buffer
// with a 16.16 fixed-point step and produces samples with the Resampler
// selected by its Quality: nearest, linear or cubic.
//
// # Lifecycle
//
//	m, _ := mixer.NewMixer(mixer.DefaultConfig())
//	bufs, _ := m.Buffers().Allocate(2)
//	_ = m.Buffers().Fill(bufs[0], mixer.Mono16, pcm, 22050)
//	srcs, _ := m.Sources().Allocate(1)
//	_ = m.Sources().QueueBuffers(srcs[0], bufs[0])
//	_ = m.Sources().Play(srcs[0])
//	n, _ := m.Read(out)
//
// Buffers that have been played are reported by SourceBuffersProcessed and
// can be unqueued, refilled and queued again to stream.
//
// # Errors
//
// Every failing operation wraps one of ErrInvalidName, ErrInvalidEnum,
// ErrInvalidValue or ErrInvalidOperation and leaves all state untouched.
package mixer
