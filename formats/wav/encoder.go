// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
)

// Encode writes pcm as a PCM WAV file. pcm holds interleaved frames in the
// layout a mixer produces: unsigned samples for 8 bits, signed little-endian
// for 16. The header sizes are patched on completion, hence the Seeker.
func Encode(w io.WriteSeeker, sampleRate, channels, bitDepth int, pcm []byte) error {
	if channels != 1 && channels != 2 {
		return fmt.Errorf("%d channels: %w", channels, ErrUnsupportedWavLayout)
	}
	if bitDepth != 8 && bitDepth != 16 {
		return fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", sampleRate, ErrUnsupportedWavLayout)
	}
	frameSize := channels * bitDepth / 8
	if len(pcm)%frameSize != 0 {
		return fmt.Errorf("%d bytes is not a whole number of %d-byte frames: %w",
			len(pcm), frameSize, ErrUnsupportedWavLayout)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           audio.Ints(pcm, bitDepth/8),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}
	return nil
}

// EncodeClip writes a decoded or rendered clip as a WAV file.
func EncodeClip(w io.WriteSeeker, clip *audio.Clip) error {
	return Encode(w, clip.SampleRate, clip.Channels, clip.BytesPerChannel*8, clip.Data)
}
