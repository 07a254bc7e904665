// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	clip, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
//   - Sample format: signed 16-bit little-endian
//   - Channels: always 2, mono files are duplicated by the decoder
//   - Sample rate: that of the MP3 stream (typically 44.1kHz or 48kHz)
//
// The whole stream is decoded into memory. A stream cut off mid-frame
// keeps the audio decoded up to that point.
//
// # Limitations
//
//   - MP3 writing is not supported (decoding only)
package mp3
