// SPDX-License-Identifier: EPL-2.0

// Package audio defines the contract between file decoders and the mixer.
//
// A Decoder reads a whole encoded stream and returns a Clip: interleaved
// PCM plus the metadata a mixer buffer needs to convert it. Clips carry
// 8-bit unsigned or 16-bit signed little-endian samples, mono or stereo,
// which is exactly what mixer.BufferStore.Fill accepts.
//
// # Format Registry
//
// The registry maps format keys, usually file extensions, to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.ForPath("drums.WAV")
//	clip, err := decoder.Decode(file)
//
// Keys are matched case-insensitively.
//
// # Error Handling
//
// Validate reports ErrInvalidClip for clips a mixer would reject, and the
// registry reports ErrUnknownFormat for keys with no decoder. Both are
// wrapped with context and should be tested with errors.Is.
package audio
