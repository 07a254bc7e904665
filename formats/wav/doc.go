// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// It uses the github.com/go-audio/wav library for the RIFF container and
// converts samples to and from the PCM layout mixer buffers take.
//
// # Supported Formats
//
//   - PCM 8-bit (unsigned) and 16-bit (signed little-endian)
//   - Mono and stereo
//   - Any sample rate
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	clip, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	_ = buffers.Fill(h, mixer.MakeFormat(clip.BytesPerChannel, clip.Channels), clip.Data, clip.SampleRate)
//
// The decoder reads the whole file into a Clip. Inputs that are not an
// io.ReadSeeker are buffered in memory first.
//
// # Writing WAV Files
//
// Encode writes mixer output, or any clip-shaped PCM, as a WAV file:
//
//	out, _ := os.Create("mix.wav")
//	defer out.Close()
//	err := wav.Encode(out, 44100, 2, 16, pcm)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedBitDepth: samples are not 8 or 16 bits
//   - ErrUnsupportedWavLayout: compressed audio, or more than two channels
//
// Errors may be wrapped; compare them with errors.Is.
package wav
