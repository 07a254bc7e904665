// SPDX-License-Identifier: EPL-2.0

package audio

import "encoding/binary"

// AppendInts appends integer samples to dst as clip PCM. For one byte per
// channel the samples are taken as unsigned 0..255, for two as signed
// 16-bit values written little-endian.
func AppendInts(dst []byte, samples []int, bytesPerChannel int) []byte {
	switch bytesPerChannel {
	case 1:
		for _, v := range samples {
			dst = append(dst, byte(v))
		}
	case 2:
		for _, v := range samples {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(v)))
		}
	}
	return dst
}

// Ints is the inverse of AppendInts.
func Ints(pcm []byte, bytesPerChannel int) []int {
	switch bytesPerChannel {
	case 1:
		out := make([]int, len(pcm))
		for i, b := range pcm {
			out[i] = int(b)
		}
		return out
	case 2:
		out := make([]int, len(pcm)/2)
		for i := range out {
			out[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		}
		return out
	}
	return nil
}

// DownmixMono averages every frame of channels interleaved samples in src
// into dst and returns the number of frames written. dst must hold
// len(src)/channels samples.
func DownmixMono(dst, src []float32, channels int) int {
	if channels <= 1 {
		return copy(dst, src)
	}
	frames := len(src) / channels

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	default:
		invChannels := float32(1.0) / float32(channels)
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += src[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}
	return frames
}
