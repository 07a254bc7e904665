// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Decoding Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	clip, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - Sample format: signed 16-bit little-endian, clamped from the decoded floats
//   - Channels: mono or stereo as in the file; surround streams are
//     averaged down to mono
//   - Sample rate: that of the stream (commonly 44.1kHz or 48kHz)
package vorbis
