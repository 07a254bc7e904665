// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
)

const wavFormatPCM = 1

// pcmReader is the part of wav.Decoder used to drain samples, to allow testing
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

// Decode reads an uncompressed PCM WAV file of 8 or 16 bits, mono or stereo.
func (Decoder) Decode(r io.Reader) (*audio.Clip, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("audio format %d: %w", dec.WavAudioFormat, ErrUnsupportedWavLayout)
	}
	if dec.BitDepth != 8 && dec.BitDepth != 16 {
		return nil, fmt.Errorf("%d bits: %w", dec.BitDepth, ErrUnsupportedBitDepth)
	}

	return readClip(dec, int(dec.BitDepth)/8)
}

func readClip(dec pcmReader, bytesPerChannel int) (*audio.Clip, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, ErrUnsupportedWavLayout
	}

	clip := &audio.Clip{
		SampleRate:      format.SampleRate,
		Channels:        format.NumChannels,
		BytesPerChannel: bytesPerChannel,
	}
	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, 4096),
	}
	for {
		n, err := dec.PCMBuffer(buf)
		clip.Data = audio.AppendInts(clip.Data, buf.Data[:n], bytesPerChannel)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading wav samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	// a truncated file may end mid-frame
	clip.Data = clip.Data[:clip.Frames()*clip.FrameSize()]
	return clip, nil
}
