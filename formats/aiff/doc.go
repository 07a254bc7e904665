// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - PCM 16-bit, stored big-endian in the file
//   - Mono and stereo
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	clip, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// The returned clip holds signed 16-bit little-endian samples, ready for
// mixer.BufferStore.Fill.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a FORM/AIFF file
//   - ErrOnlyPCM16bitSupported: samples are not 16 bits
//   - ErrUnsupportedAiffLayout: more than two channels
package aiff
