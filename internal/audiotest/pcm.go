// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds raw PCM fixtures for tests.
package audiotest

import (
	"encoding/binary"
	"math"
)

// Waveform returns the sample for frame i and channel ch in [-1, 1].
type Waveform func(i, ch int) float64

// Sine is a sine of freq Hz at sampleRate, identical on every channel.
func Sine(freq float64, sampleRate int) Waveform {
	return func(i, _ int) float64 {
		return math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
}

// Constant is a DC level on every channel.
func Constant(v float64) Waveform {
	return func(int, int) float64 { return v }
}

// PCM16 renders frames of wave as interleaved signed 16-bit little-endian PCM.
func PCM16(wave Waveform, channels, frames int) []byte {
	out := make([]byte, frames*channels*2)
	for i := range frames {
		for ch := range channels {
			v := int16(clamp(wave(i, ch)) * math.MaxInt16)
			binary.LittleEndian.PutUint16(out[(i*channels+ch)*2:], uint16(v))
		}
	}
	return out
}

// PCM8 renders frames of wave as interleaved unsigned 8-bit PCM (128 is silence).
func PCM8(wave Waveform, channels, frames int) []byte {
	out := make([]byte, frames*channels)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = byte(int(clamp(wave(i, ch))*127) + 128)
		}
	}
	return out
}

// Silence8 is n bytes of unsigned 8-bit silence.
func Silence8(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = 0x80
	}
	return out
}

// Samples16 packs signed 16-bit samples little-endian.
func Samples16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// Int16s unpacks little-endian signed 16-bit samples.
func Int16s(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
